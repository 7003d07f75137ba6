package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"routemap/config"
	"routemap/docstore"
	"routemap/docstore/s3"
	"routemap/docstore/sqlite"
	"routemap/metrics"
	"routemap/registry"
)

// sqliteFile is the database name used when a sqlite path is a directory.
const sqliteFile = "routemap.db"

// services are the stores and observability shared by the commands.
type services struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Registry

	local  docstore.Store
	remote docstore.Store // nil when the registry lives in the local store

	closers []io.Closer
}

func openServices(ctx context.Context, cfg config.Config) (*services, error) {
	s := &services{cfg: cfg, metrics: metrics.NewRegistry()}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	s.track(closer)

	local, closer, err := openStore(ctx, cfg.Local.Kind, cfg.Local.Path, cfg.Remote)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open local store: %w", err)
	}
	s.local = local
	s.track(closer)

	if cfg.Remote.Kind != "none" {
		remote, closer, err := openStore(ctx, cfg.Remote.Kind, cfg.Remote.Path, cfg.Remote)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open remote store: %w", err)
		}
		s.track(closer)
		if _, ok := remote.(docstore.Watcher); !ok {
			remote = docstore.NewPoll(remote, cfg.Remote.PollInterval, logger)
		}
		s.remote = remote
	}

	logger.Debug("stores opened", "local", cfg.Local.Kind, "remote", cfg.Remote.Kind)
	return s, nil
}

func (s *services) track(c io.Closer) {
	if c != nil {
		s.closers = append(s.closers, c)
	}
}

// Close releases the stores and the log file, last opened first.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// destinations lists the registry documents: the primary key and, when
// configured, the mirror key, both in the remote store (or the local one).
func (s *services) destinations() []registry.Destination {
	st := s.remote
	if st == nil {
		st = s.local
	}
	dests := []registry.Destination{{Name: "primary", Store: st, Key: s.cfg.Registry.PrimaryKey}}
	if s.cfg.Registry.MirrorKey != "" {
		dests = append(dests, registry.Destination{Name: "mirror", Store: st, Key: s.cfg.Registry.MirrorKey})
	}
	return dests
}

func (s *services) newRegistry() *registry.Registry {
	return registry.New(s.destinations(),
		registry.WithLogger(s.logger),
		registry.WithMetrics(s.metrics),
		registry.WithDelay(s.cfg.Registry.Delay),
	)
}

func openStore(ctx context.Context, kind, path string, remote config.RemoteConfig) (docstore.Store, io.Closer, error) {
	switch kind {
	case "memory":
		return docstore.NewMemory(), nil, nil
	case "dir":
		d, err := docstore.NewDir(path)
		if err != nil {
			return nil, nil, err
		}
		return d, nil, nil
	case "sqlite":
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, sqliteFile)
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case "s3":
		st, err := s3.New(ctx, s3.Options{
			Bucket:          remote.Bucket,
			Prefix:          remote.Prefix,
			Region:          remote.Region,
			Endpoint:        remote.Endpoint,
			AccessKeyID:     remote.AccessKeyID,
			SecretAccessKey: remote.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// newLogger writes text logs to the configured file. The terminal owns
// stdout while editing, so an empty file name discards logs.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), nil, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

// serveMetrics exposes /metrics on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, m *metrics.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("metrics listening", "addr", addr)
}
