// Package events announces collection changes on NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"pg-connect/pkg/logger"
)

const DefaultSubjectPrefix = "pgconnect.slots"

// SlotChanged is the payload published after every committed write.
type SlotChanged struct {
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	ChangedAt time.Time `json:"changed_at"`
}

type Publisher struct {
	conn    *nats.Conn
	publish func(subject string, data []byte) error
	prefix  string
	log     logger.Logger
	now     func() time.Time
}

func Connect(url, prefix string, log logger.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("pg-connect"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	p := newPublisher(conn.Publish, prefix, log)
	p.conn = conn
	return p, nil
}

func newPublisher(publish func(string, []byte) error, prefix string, log logger.Logger) *Publisher {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		publish: publish,
		prefix:  prefix,
		log:     log,
		now:     time.Now,
	}
}

func (p *Publisher) Subject(key string) string {
	return p.prefix + "." + key
}

// SlotChanged publishes best effort; failures are only logged.
func (p *Publisher) SlotChanged(ctx context.Context, key string, count int) {
	if err := ctx.Err(); err != nil {
		p.log.Warn("events.slot_changed: context done before publish", "key", key)
		return
	}
	data, err := json.Marshal(SlotChanged{Key: key, Count: count, ChangedAt: p.now().UTC()})
	if err != nil {
		p.log.InternalError("events.slot_changed: marshal failed", err, "key", key)
		return
	}
	if err := p.publish(p.Subject(key), data); err != nil {
		p.log.InternalError("events.slot_changed: publish failed", err, "key", key)
	}
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
