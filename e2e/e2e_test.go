//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pg-connect/internal/app"
	"pg-connect/internal/config"
	"pg-connect/pkg/logger"
)

type testEnv struct {
	app    *app.App
	server *httptest.Server
}

// storeConfig uses Postgres when E2E_DB_DSN is set and a sqlite file otherwise.
func storeConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Config{
		AllowedOrigins: []string{"*"},
		Store: config.StoreConfig{
			Driver:     config.StoreDriverSQLite,
			KeyPrefix:  "e2e_",
			SQLitePath: filepath.Join(t.TempDir(), "pg-connect.db"),
		},
		Auth: config.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
			SessionTTL:    time.Hour,
		},
		GenAI: config.GenAIConfig{Timeout: time.Second},
		Fees:  config.FeesConfig{InitialAmount: 5000},
	}
	if dsn := os.Getenv("E2E_DB_DSN"); dsn != "" {
		cfg.Store.Driver = config.StoreDriverPostgres
		cfg.DB = config.DBConfig{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}
	}
	return cfg
}

func start(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()

	application, err := app.New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("app init: %v", err)
	}
	return &testEnv{app: application, server: httptest.NewServer(application.Handler())}
}

func (e *testEnv) Close() {
	e.server.Close()
	_ = e.app.Close()
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type loginResponse struct {
	Token string `json:"token"`
}

type residentResponse struct {
	ID     int64  `json:"resident_id"`
	RoomID int64  `json:"room_id"`
	Name   string `json:"name"`
}

type residentListResponse struct {
	Items []residentResponse `json:"items"`
	Total int                `json:"total"`
}

type messageListResponse struct {
	Items []struct {
		Sender string `json:"sender"`
		Text   string `json:"text"`
	} `json:"items"`
}

func loginAdmin(t *testing.T, client *http.Client, env *testEnv) string {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{
		"role": "ADMIN", "identifier": "admin", "password": "admin123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func listResidents(t *testing.T, client *http.Client, env *testEnv, token string) residentListResponse {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/residents", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var out residentListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode residents: %v", err)
	}
	return out
}

func TestE2ECollectionsSurviveRestart(t *testing.T) {
	cfg := storeConfig(t)
	client := &http.Client{Timeout: 5 * time.Second}

	env := start(t, cfg)
	if err := env.app.Seed(context.Background(), true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	token := loginAdmin(t, client, env)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/residents", token, map[string]interface{}{
		"room_id": 104,
		"name":    "Meera Iyer",
		"phone":   "9000000002",
		"state":   "Tamil Nadu",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/104/messages", token, map[string]string{"text": "Welcome to room 104"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	env.Close()

	env = start(t, cfg)
	defer env.Close()

	// Sessions are not persisted; the old token must be rejected.
	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale session, got %d", resp.StatusCode)
	}
	token = loginAdmin(t, client, env)

	residents := listResidents(t, client, env, token)
	if residents.Total != 7 {
		t.Fatalf("expected 7 residents, got %d", residents.Total)
	}
	last := residents.Items[len(residents.Items)-1]
	if last.ID <= 6 || last.Name != "Meera Iyer" || last.RoomID != 104 {
		t.Fatalf("unexpected resident %+v", last)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/rooms/104/messages", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var thread messageListResponse
	if err := json.Unmarshal(body, &thread); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(thread.Items) != 1 || thread.Items[0].Sender != "ADMIN" {
		t.Fatalf("unexpected thread %+v", thread.Items)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{
		"role": "RESIDENT", "identifier": "9000000002",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected new resident to log in, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2ESeedResetRestoresDirectory(t *testing.T) {
	cfg := storeConfig(t)
	client := &http.Client{Timeout: 5 * time.Second}

	env := start(t, cfg)
	defer env.Close()
	token := loginAdmin(t, client, env)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/residents", token, map[string]interface{}{
		"room_id": 101, "name": "Temp", "phone": "9000000003",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	if err := env.app.Seed(context.Background(), true); err != nil {
		t.Fatalf("seed reset: %v", err)
	}

	residents := listResidents(t, client, env, token)
	if residents.Total != 6 {
		t.Fatalf("expected 6 residents after reset, got %d", residents.Total)
	}
}
