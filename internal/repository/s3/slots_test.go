package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pg-connect/internal/store"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestBackend(t *testing.T) (*SlotBackend, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: make(map[string][]byte)}
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	backend, err := New(context.Background(), Config{
		Bucket:          "pg-connect",
		Region:          "us-east-1",
		Endpoint:        server.URL,
		PathStyle:       true,
		Prefix:          "slots/",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)
	return backend, bucket
}

func TestSlotBackendMissingKey(t *testing.T) {
	backend, _ := newTestBackend(t)

	_, err := backend.Get(context.Background(), "pg_connect_tickets")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSlotBackendPutThenGet(t *testing.T) {
	ctx := context.Background()
	backend, bucket := newTestBackend(t)

	require.NoError(t, backend.Put(ctx, "pg_connect_tickets", []byte(`{"version":1,"seq":3,"data":[]}`)))

	_, stored := bucket.objects["pg-connect/slots/pg_connect_tickets.json"]
	assert.True(t, stored)

	payload, err := backend.Get(ctx, "pg_connect_tickets")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"seq":3,"data":[]}`, string(payload))
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
