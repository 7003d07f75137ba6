package docstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// DefaultPollInterval is used when NewPoll is given a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// Poll adds Watch to any Store by re-reading keys on an interval.
type Poll struct {
	Store
	interval time.Duration
	logger   *slog.Logger
}

// NewPoll wraps s. A nil logger discards poll errors.
func NewPoll(s Store, interval time.Duration, logger *slog.Logger) *Poll {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Poll{Store: s, interval: interval, logger: logger}
}

// Watch polls key and calls fn whenever the stored bytes differ from the
// previous poll. Watch returns at once; the first poll runs after one
// interval and delivers the value present then. Every read is bounded by the
// poll interval, so a stalled store only delays the next poll.
func (p *Poll) Watch(ctx context.Context, key string, fn func([]byte)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		var last []byte
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			doc, err := p.read(ctx, key)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				if ctx.Err() == nil {
					p.logger.Warn("poll document", "key", key, "error", err)
				}
				continue
			}
			if last != nil && bytes.Equal(doc, last) {
				continue
			}
			last = doc
			fn(doc)
		}
	}()
	return nil
}

func (p *Poll) read(ctx context.Context, key string) ([]byte, error) {
	readCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()
	return p.Get(readCtx, key)
}
