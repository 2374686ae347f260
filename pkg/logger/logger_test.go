package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelIsRenderedByName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("store: backend unavailable", "driver", "sqlite")

	if !strings.Contains(buf.String(), `"level":"CRITICAL"`) {
		t.Fatalf("expected CRITICAL level, got %s", buf.String())
	}
}

func TestBusinessErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("auth.login: rejected", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	log.BusinessError("auth.login: rejected", errors.New("invalid credentials"), "role", "ADMIN")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "role=ADMIN") {
		t.Fatalf("expected warn line with role attr, got %q", out)
	}
}

func TestParseLevelDefaultsByEnv(t *testing.T) {
	if got := parseLevel("", "development"); got != slog.LevelDebug {
		t.Fatalf("expected debug in development, got %v", got)
	}
	if got := parseLevel("", "production"); got != slog.LevelInfo {
		t.Fatalf("expected info in production, got %v", got)
	}
	if got := parseLevel("fatal", "production"); got != LevelCritical {
		t.Fatalf("expected critical, got %v", got)
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop().With("component", "test")
	log.Critical("ignored")
	log.InternalError("ignored", errors.New("boom"))
}
