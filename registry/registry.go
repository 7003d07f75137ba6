// Package registry mirrors the shared custom icon list to remote document
// stores. Remote lists are unioned into the local list; local edits are
// written back after a quiet period.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"routemap/appearance"
	"routemap/docstore"
	"routemap/metrics"
	"routemap/persist"
)

const (
	// DefaultDelay is the remote write debounce.
	DefaultDelay = 800 * time.Millisecond
	// DefaultTimeout bounds every remote read and write.
	DefaultTimeout = 10 * time.Second
)

// Destination is one remote copy of the registry document.
type Destination struct {
	Name  string
	Store docstore.Store
	Key   string
}

// Document is the stored registry shape.
type Document struct {
	CustomIcons []string  `json:"customIcons"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Decode parses a registry document. A document without a customIcons
// array is rejected.
func Decode(data []byte) (Document, error) {
	var raw struct {
		CustomIcons *[]string `json:"customIcons"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decode registry: %w", err)
	}
	if raw.CustomIcons == nil {
		return Document{}, errors.New("decode registry: missing customIcons array")
	}
	return Document{CustomIcons: appearance.Dedupe(*raw.CustomIcons), UpdatedAt: raw.UpdatedAt}, nil
}

type destination struct {
	Destination
	last string // serialized icon list last read from or written to the store
}

// Registry is the local icon list plus its remote mirrors. It is safe for
// concurrent use: watch callbacks arrive on store goroutines and writes run
// on the debounce timer.
type Registry struct {
	mu        sync.Mutex
	icons     *appearance.IconList
	dests     []*destination
	listeners []func([]string)

	logger  *slog.Logger
	metrics *metrics.Registry
	timeout time.Duration
	delay   time.Duration
	now     func() time.Time

	debounce *persist.Debouncer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for remote failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records remote traffic in m.
func WithMetrics(m *metrics.Registry) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.delay = d
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock sets the time source for updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIcons seeds the local list.
func WithIcons(icons ...string) Option {
	return func(r *Registry) { r.icons = appearance.NewIconList(icons...) }
}

// New creates a registry mirrored to dests. Nothing is read until Start.
func New(dests []Destination, opts ...Option) *Registry {
	r := &Registry{
		icons:   appearance.NewIconList(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: DefaultTimeout,
		delay:   DefaultDelay,
		now:     time.Now,
	}
	for _, d := range dests {
		r.dests = append(r.dests, &destination{Destination: d})
	}
	for _, opt := range opts {
		opt(r)
	}
	r.debounce = persist.NewDebouncer(r.delay, r.Flush)
	return r
}

// OnChange registers fn to be called with the new list whenever a remote
// read grows the local list. fn runs on the goroutine that observed the
// change.
func (r *Registry) OnChange(fn func([]string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Start subscribes to the destinations that can push changes, then reads
// every destination once. Subscribing first means a change landing during
// the read is still delivered. Each read is bounded by the timeout and
// failures are logged and counted; Start itself never fails. A destination
// that lacks the local list gets a write scheduled.
func (r *Registry) Start(ctx context.Context) {
	for _, d := range r.dests {
		if w, ok := d.Store.(docstore.Watcher); ok {
			if err := w.Watch(ctx, d.Key, func(data []byte) { r.observe(d, data) }); err != nil {
				r.logger.Warn("watch icon registry", "destination", d.Name, "error", err)
			}
		}

		readCtx, cancel := context.WithTimeout(ctx, r.timeout)
		data, err := d.Store.Get(readCtx, d.Key)
		cancel()
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			r.recordRead(d, metrics.StatusNotFound)
			if len(r.Icons()) > 0 {
				r.debounce.Trigger()
			}
		case err != nil:
			r.recordRead(d, metrics.StatusError)
			r.logger.Warn("read icon registry", "destination", d.Name, "error", err)
		default:
			r.observe(d, data)
		}
	}
}

// observe unions a remote document into the local list and schedules a write
// when the destination is behind the merged list.
func (r *Registry) observe(d *destination, data []byte) {
	doc, err := Decode(data)
	if err != nil {
		r.recordRead(d, metrics.StatusInvalid)
		r.logger.Warn("ignoring icon registry document", "destination", d.Name, "error", err)
		return
	}
	r.recordRead(d, metrics.StatusOK)

	r.mu.Lock()
	d.last = serialize(doc.CustomIcons)
	grew := r.icons.Merge(doc.CustomIcons)
	icons := r.icons.Items()
	behind := d.last != serialize(icons)
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	if grew {
		r.logger.Info("icon registry merged remote icons", "destination", d.Name, "icons", len(icons))
		r.setGauge(len(icons))
		for _, fn := range listeners {
			fn(slices.Clone(icons))
		}
	}
	if grew || behind {
		r.debounce.Trigger()
	}
}

// Icons returns the local list.
func (r *Registry) Icons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.icons.Items()
}

// SetIcons replaces the local list and schedules a write.
func (r *Registry) SetIcons(icons []string) {
	r.mu.Lock()
	r.icons = appearance.NewIconList(icons...)
	n := r.icons.Len()
	r.mu.Unlock()
	r.setGauge(n)
	r.debounce.Trigger()
}

// AddIcon appends icon and schedules a write. It reports whether the list changed.
func (r *Registry) AddIcon(icon string) bool {
	r.mu.Lock()
	added := r.icons.Add(icon)
	n := r.icons.Len()
	r.mu.Unlock()
	if added {
		r.setGauge(n)
		r.debounce.Trigger()
	}
	return added
}

// RemoveIcon deletes icon and schedules a write. It reports whether the list changed.
func (r *Registry) RemoveIcon(icon string) bool {
	r.mu.Lock()
	removed := r.icons.Remove(icon)
	n := r.icons.Len()
	r.mu.Unlock()
	if removed {
		r.setGauge(n)
		r.debounce.Trigger()
	}
	return removed
}

// Pending reports whether a write is scheduled.
func (r *Registry) Pending() bool {
	return r.debounce.Pending()
}

// Flush writes the local list to every destination whose last known list
// differs from it.
func (r *Registry) Flush() {
	r.mu.Lock()
	icons := r.icons.Items()
	r.mu.Unlock()
	current := serialize(icons)

	data, err := json.Marshal(Document{CustomIcons: icons, UpdatedAt: r.now().UTC()})
	if err != nil {
		r.logger.Error("encode icon registry", "error", err)
		return
	}

	for _, d := range r.dests {
		r.mu.Lock()
		unchanged := d.last == current
		r.mu.Unlock()
		if unchanged {
			r.recordWrite(d, metrics.StatusSkipped)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := d.Store.Put(ctx, d.Key, data)
		cancel()
		if err != nil {
			r.recordWrite(d, metrics.StatusError)
			r.logger.Warn("write icon registry", "destination", d.Name, "error", err)
			continue
		}
		r.mu.Lock()
		d.last = current
		r.mu.Unlock()
		r.recordWrite(d, metrics.StatusOK)
	}
}

// Close writes any pending change and stops the timer.
func (r *Registry) Close() {
	r.debounce.Flush()
	r.debounce.Stop()
}

func (r *Registry) recordRead(d *destination, status string) {
	if r.metrics != nil {
		r.metrics.RecordRegistryRead(d.Name, status)
	}
}

func (r *Registry) recordWrite(d *destination, status string) {
	if r.metrics != nil {
		r.metrics.RecordRegistryWrite(d.Name, status)
	}
}

func (r *Registry) setGauge(n int) {
	if r.metrics != nil {
		r.metrics.RegistryIcons.Set(float64(n))
	}
}

func serialize(icons []string) string {
	if icons == nil {
		icons = []string{}
	}
	data, _ := json.Marshal(icons)
	return string(data)
}
