package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"routemap/diagram"
	"routemap/editor"
	"routemap/persist"
	"routemap/registry"
	"routemap/store"
	"routemap/terminal"
)

func editCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the route map editor",
		Long: "Edit opens the terminal editor. Without a file the autosaved draft\n" +
			"is restored. A file that does not exist yet is created by :w.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return runEditor(ctx, opts, file)
		},
	}
}

// session is an editor wired to its stores, autosave and icon registry.
type session struct {
	svc   *services
	store *store.Store
	ed    *editor.Editor
	saver *persist.Autosaver
	icons *registry.Registry
}

// newSession builds the editor for file (or the draft when file is ""),
// restores content and attaches autosave. Callers must close it.
func newSession(ctx context.Context, opts *options, file string) (*session, error) {
	cfg := opts.cfg
	svc, err := openServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	variant, ok := editor.ParseVariant(cfg.Editor.Variant)
	if !ok {
		svc.Close()
		return nil, fmt.Errorf("unknown editor variant %q", cfg.Editor.Variant)
	}

	st := store.New(store.WithDepth(cfg.Editor.HistoryDepth), store.WithLogger(svc.logger))
	icons := svc.newRegistry()
	ed := editor.New(st,
		editor.WithVariant(variant),
		editor.WithGrid(cfg.Editor.GridSize, cfg.Editor.Snap),
		editor.WithLayoutSpacing(cfg.Editor.ColumnSpacing, cfg.Editor.RowSpacing),
		editor.WithLogger(svc.logger),
		editor.WithIcons(icons),
	)

	switch {
	case file != "":
		g, err := readGraph(file, "")
		switch {
		case errors.Is(err, fs.ErrNotExist):
			svc.logger.Info("starting new route map", "file", file)
		case err != nil:
			svc.Close()
			return nil, err
		default:
			ed.Load(g)
		}
	case persist.RestoreDraft(ctx, svc.local, st, svc.logger):
		ed.RequestFit()
		svc.logger.Info("draft restored", "nodes", len(st.View().Nodes))
	}

	saver := persist.NewAutosaver(svc.local,
		persist.WithDelay(cfg.Local.AutosaveDelay),
		persist.WithLogger(svc.logger),
		persist.WithMetrics(svc.metrics),
	)
	saver.Attach(st)
	st.OnCommit(func(g diagram.Graph) {
		svc.metrics.RecordCommit(len(g.Nodes), len(g.Edges))
	})

	return &session{svc: svc, store: st, ed: ed, saver: saver, icons: icons}, nil
}

// Close flushes the draft and the icon registry, then closes the stores.
func (s *session) Close() error {
	s.saver.Close()
	s.icons.Close()
	return s.svc.Close()
}

// saveFunc writes the graph to file in the format its extension names.
func saveFunc(file string) func(diagram.Graph) (string, error) {
	if file == "" {
		return nil
	}
	return func(g diagram.Graph) (string, error) {
		format := formatForPath(file)
		data, err := render(g, format)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
			return "", err
		}
		return fmt.Sprintf("wrote %s (%s)", file, format), nil
	}
}

func runEditor(ctx context.Context, opts *options, file string) error {
	s, err := newSession(ctx, opts, file)
	if err != nil {
		return err
	}
	defer s.Close()

	if addr := opts.cfg.Metrics.Addr; addr != "" {
		serveMetrics(ctx, addr, s.svc.metrics, s.svc.logger)
	}

	screen, err := terminal.OpenScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	app := terminal.New(screen, s.ed,
		terminal.WithLogger(s.svc.logger),
		terminal.WithGlyphs(opts.cfg.Editor.Glyphs),
		terminal.WithSave(saveFunc(file)),
	)
	s.icons.OnChange(func([]string) { app.Refresh() })
	defer startRegistry(ctx, s.icons)()

	err = app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startRegistry runs reg.Start in the background so a slow remote never
// delays the editor. The returned func cancels the reads and waits for them.
func startRegistry(ctx context.Context, reg *registry.Registry) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reg.Start(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}
