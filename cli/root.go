// Package cli implements the routemap command line.
package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"routemap/config"
)

var version = "0.3.0"

type options struct {
	configPath string
	cfg        config.Config
}

// Execute runs the root command and prints errors in color.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		Bad.Fprintf(os.Stderr, "routemap: %v\n", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "routemap",
		Short:         "routemap - a node map builder for campaign routes",
		Long:          Brand.Sprint("routemap") + " - build branching campaign route maps in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	root.SetVersionTemplate("routemap {{ .Version }}\n")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")

	root.AddCommand(
		editCmd(opts),
		exportCmd(),
		importCmd(opts),
		layoutCmd(opts),
		iconsCmd(opts),
		renderCmd(opts),
		formatsCmd(),
	)
	return root
}

func (o *options) load() error {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
