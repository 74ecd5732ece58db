package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const lokiFlushInterval = 5 * time.Second

// LokiHandler is a slog.Handler that ships records to a Loki instance over
// HTTP. Records are batched and pushed in the background; a Loki outage
// never blocks or fails a request.
type LokiHandler struct {
	level   slog.Level
	enabled bool
	attrs   []slog.Attr
	buf     *lokiBuffer
}

// lokiBuffer owns the batch and the HTTP client. Handlers derived through
// WithAttrs share it so their records land in the same stream.
type lokiBuffer struct {
	pushURL   string
	labels    map[string]string
	client    *http.Client
	batchSize int

	mu       sync.Mutex
	batch    [][2]string
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// NewLokiHandler builds the handler. labels tag every stream (the deployment
// sets {"app": "maferme237", "env": ...}); batchSize 0 pushes each record
// immediately.
func NewLokiHandler(url string, labels map[string]string, batchSize int, enabled bool, level slog.Level) *LokiHandler {
	if labels == nil {
		labels = make(map[string]string)
	}

	buf := &lokiBuffer{
		pushURL:   url + "/loki/api/v1/push",
		labels:    labels,
		client:    &http.Client{Timeout: 5 * time.Second},
		batchSize: batchSize,
		batch:     make([][2]string, 0, batchSize),
		done:      make(chan struct{}),
	}

	if enabled && batchSize > 0 {
		buf.ticker = time.NewTicker(lokiFlushInterval)
		go buf.flushLoop()
	}

	return &LokiHandler{level: level, enabled: enabled, buf: buf}
}

func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled && level >= h.level
}

func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.enabled {
		return nil
	}

	fields := map[string]any{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})

	line, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal log record: %w", err)
	}

	h.buf.append(r.Time, string(line))
	return nil
}

// WithAttrs returns a handler that stamps attrs on every record, sharing
// the batch with the parent.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &LokiHandler{level: h.level, enabled: h.enabled, attrs: merged, buf: h.buf}
}

// WithGroup is accepted but flattening is not applied; grouped attributes
// keep their leaf keys.
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	return h
}

// Close stops the background flusher and pushes whatever is pending. Safe
// to call more than once.
func (h *LokiHandler) Close() error {
	h.buf.stopOnce.Do(func() {
		if h.buf.ticker != nil {
			h.buf.ticker.Stop()
			close(h.buf.done)
		}
	})
	h.buf.flush()
	return nil
}

// append queues one [unix_nanos, line] pair, flushing when the batch fills.
func (b *lokiBuffer) append(ts time.Time, line string) {
	b.mu.Lock()
	b.batch = append(b.batch, [2]string{strconv.FormatInt(ts.UnixNano(), 10), line})
	full := b.batchSize == 0 || len(b.batch) >= b.batchSize
	b.mu.Unlock()

	if full {
		b.flush()
	}
}

func (b *lokiBuffer) flushLoop() {
	for {
		select {
		case <-b.ticker.C:
			b.flush()
		case <-b.done:
			return
		}
	}
}

// flush pushes the pending batch. Push failures are dropped on purpose;
// losing log lines beats coupling request latency to Loki.
func (b *lokiBuffer) flush() {
	b.mu.Lock()
	if len(b.batch) == 0 {
		b.mu.Unlock()
		return
	}
	values := b.batch
	b.batch = make([][2]string, 0, b.batchSize)
	b.mu.Unlock()

	body, err := json.Marshal(lokiPushRequest{
		Streams: []lokiStream{{Stream: b.labels, Values: values}},
	})
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, b.pushURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
