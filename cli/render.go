package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"routemap/canvas"
	"routemap/validation"
)

func renderCmd(opts *options) *cobra.Command {
	var width, height int
	var check bool
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a route map as box-drawing text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(args[0], "")
			if err != nil {
				return err
			}
			text := canvas.Snapshot(g, width, height, opts.cfg.Editor.Glyphs).String()
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if !check {
				return nil
			}
			problems := validation.Lines(text)
			for _, p := range problems {
				Warn.Fprintln(cmd.ErrOrStderr(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d line drawing problem(s)", len(problems))
			}
			Good.Fprintln(cmd.ErrOrStderr(), "lines ok")
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "width in cells, sized to the map when 0")
	cmd.Flags().IntVar(&height, "height", 0, "height in cells, sized to the map when 0")
	cmd.Flags().BoolVar(&check, "check", false, "report lines that end in empty space")
	return cmd
}
