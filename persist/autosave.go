// Package persist saves the working graph as a local draft and restores it
// on startup.
package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"routemap/diagram"
	"routemap/docstore"
	"routemap/export"
	"routemap/importer"
	"routemap/metrics"
	"routemap/store"
)

const (
	// DraftKey is the local store key of the autosaved graph.
	DraftKey = "routemap.draft"
	// DefaultDelay is the local autosave debounce.
	DefaultDelay = 250 * time.Millisecond
	// DefaultTimeout bounds a single draft write.
	DefaultTimeout = 5 * time.Second
)

// Autosaver writes the latest committed graph to a local store after a
// quiet period. Failed writes are logged and counted, never retried.
type Autosaver struct {
	local   docstore.Store
	key     string
	delay   time.Duration
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Registry

	mu       sync.Mutex
	payload  []byte
	failures int
	saves    int

	debounce *Debouncer
}

// Option configures an Autosaver.
type Option func(*Autosaver)

// WithKey overrides DraftKey.
func WithKey(key string) Option {
	return func(a *Autosaver) { a.key = key }
}

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(a *Autosaver) {
		if d > 0 {
			a.delay = d
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Autosaver) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger for write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Autosaver) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records every write in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *Autosaver) { a.metrics = r }
}

// NewAutosaver creates an autosaver writing to local.
func NewAutosaver(local docstore.Store, opts ...Option) *Autosaver {
	a := &Autosaver{
		local:   local,
		key:     DraftKey,
		delay:   DefaultDelay,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.debounce = NewDebouncer(a.delay, a.save)
	return a
}

// Attach subscribes the autosaver to every commit of st.
func (a *Autosaver) Attach(st *store.Store) {
	st.OnCommit(a.Commit)
}

// Commit serializes g immediately and schedules the write. Only the last
// graph committed within the delay is written.
func (a *Autosaver) Commit(g diagram.Graph) {
	data, err := export.NewJSONExporter().Export(g)
	if err != nil {
		a.logger.Error("serialize draft", "error", err)
		return
	}
	a.mu.Lock()
	a.payload = []byte(data)
	a.mu.Unlock()
	a.debounce.Trigger()
}

// Flush writes a pending draft now.
func (a *Autosaver) Flush() {
	a.debounce.Flush()
}

// Close flushes a pending draft and stops the timer.
func (a *Autosaver) Close() {
	a.debounce.Flush()
	a.debounce.Stop()
}

// Stats returns the number of successful and failed writes.
func (a *Autosaver) Stats() (saves, failures int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves, a.failures
}

func (a *Autosaver) save() {
	a.mu.Lock()
	payload := a.payload
	a.mu.Unlock()
	if payload == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	start := time.Now()
	err := a.local.Put(ctx, a.key, payload)
	status := metrics.StatusOK
	a.mu.Lock()
	if err != nil {
		a.failures++
		status = metrics.StatusError
	} else {
		a.saves++
	}
	a.mu.Unlock()

	if a.metrics != nil {
		a.metrics.RecordAutosave(status, len(payload), time.Since(start))
	}
	if err != nil {
		a.logger.Warn("autosave draft", "key", a.key, "error", err)
		return
	}
	a.logger.Debug("autosaved draft", "key", a.key, "bytes", len(payload))
}

// RestoreDraft loads the draft stored under DraftKey into st. It reports
// whether a draft was loaded. A missing draft is silent; an unreadable or
// undecodable one is logged and left alone.
func RestoreDraft(ctx context.Context, local docstore.Store, st *store.Store, logger *slog.Logger) bool {
	return RestoreDraftKey(ctx, local, DraftKey, st, logger)
}

// RestoreDraftKey is RestoreDraft for a custom key.
func RestoreDraftKey(ctx context.Context, local docstore.Store, key string, st *store.Store, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	data, err := local.Get(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return false
	}
	if err != nil {
		logger.Warn("read draft", "key", key, "error", err)
		return false
	}

	g, err := importer.ImportJSON(data)
	if err != nil {
		logger.Warn("ignoring undecodable draft", "key", key, "error", err)
		return false
	}
	st.Load(g)
	logger.Info("restored draft", "key", key, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return true
}
