package logging_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Melvins45/maferme237/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lokiPushRequest struct {
	Streams []struct {
		Stream map[string]string `json:"stream"`
		Values [][]string        `json:"values"`
	} `json:"streams"`
}

// fakeLoki records every push body it receives.
type fakeLoki struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (f *fakeLoki) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies = append(f.bodies, body)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *fakeLoki) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

func (f *fakeLoki) decode(t *testing.T, i int) lokiPushRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var req lokiPushRequest
	require.NoError(t, json.Unmarshal(f.bodies[i], &req))
	return req
}

func TestLokiHandler(t *testing.T) {
	loki := &fakeLoki{}
	server := httptest.NewServer(loki.handler())
	defer server.Close()

	labels := map[string]string{"app": "test"}
	handler := logging.NewLokiHandler(server.URL, labels, 1, true, slog.LevelInfo)
	defer handler.Close()

	slog.New(handler).Info("hello, loki", "key", "value")
	require.NoError(t, handler.Close())

	require.GreaterOrEqual(t, loki.count(), 1)
	req := loki.decode(t, 0)
	require.Len(t, req.Streams, 1)
	stream := req.Streams[0]
	assert.Equal(t, labels, stream.Stream)
	require.Len(t, stream.Values, 1)
	require.Len(t, stream.Values[0], 2)
	assert.NotEmpty(t, stream.Values[0][0])

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(stream.Values[0][1]), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "hello, loki", line["msg"])
	assert.Equal(t, "value", line["key"])
}

func TestLokiHandler_Batching(t *testing.T) {
	loki := &fakeLoki{}
	server := httptest.NewServer(loki.handler())
	defer server.Close()

	handler := logging.NewLokiHandler(server.URL, nil, 2, true, slog.LevelInfo)
	defer handler.Close()
	logger := slog.New(handler)

	// One record sits in the batch
	logger.Info("message 1")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, loki.count())

	// The second one fills it and triggers the push
	logger.Info("message 2")
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 1, loki.count())

	req := loki.decode(t, 0)
	require.Len(t, req.Streams, 1)
	values := req.Streams[0].Values
	require.Len(t, values, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(values[0][1]), &first))
	require.NoError(t, json.Unmarshal([]byte(values[1][1]), &second))
	assert.Equal(t, "message 1", first["msg"])
	assert.Equal(t, "message 2", second["msg"])
}

func TestLokiHandler_WithAttrs(t *testing.T) {
	loki := &fakeLoki{}
	server := httptest.NewServer(loki.handler())
	defer server.Close()

	handler := logging.NewLokiHandler(server.URL, nil, 1, true, slog.LevelInfo)
	defer handler.Close()

	slog.New(handler).With("request_id", "abc-123").Info("tagged")
	require.NoError(t, handler.Close())

	require.GreaterOrEqual(t, loki.count(), 1)
	req := loki.decode(t, 0)
	require.Len(t, req.Streams, 1)
	require.Len(t, req.Streams[0].Values, 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Streams[0].Values[0][1]), &line))
	assert.Equal(t, "abc-123", line["request_id"])
	assert.Equal(t, "tagged", line["msg"])
}
