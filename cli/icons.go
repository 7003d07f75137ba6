package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"routemap/registry"
)

func iconsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Manage the shared custom icon registry",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the registered icons",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd.Context(), opts, func(reg *registry.Registry) error {
					for _, icon := range reg.Icons() {
						fmt.Fprintln(cmd.OutOrStdout(), icon)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <icon>...",
			Short: "Register icons",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd.Context(), opts, func(reg *registry.Registry) error {
					for _, icon := range args {
						if reg.AddIcon(icon) {
							Good.Fprintf(cmd.OutOrStdout(), "added %s\n", icon)
						} else {
							Warn.Fprintf(cmd.OutOrStdout(), "skipped %s\n", icon)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <icon>...",
			Aliases: []string{"remove"},
			Short:   "Unregister icons",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd.Context(), opts, func(reg *registry.Registry) error {
					for _, icon := range args {
						if reg.RemoveIcon(icon) {
							Good.Fprintf(cmd.OutOrStdout(), "removed %s\n", icon)
						} else {
							Warn.Fprintf(cmd.OutOrStdout(), "not registered %s\n", icon)
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// withRegistry reads the registry from every destination, runs fn and
// writes any change back before returning.
func withRegistry(ctx context.Context, opts *options, fn func(*registry.Registry) error) error {
	svc, err := openServices(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := svc.newRegistry()
	reg.Start(ctx)
	defer reg.Close()

	return fn(reg)
}
