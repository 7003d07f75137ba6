package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"routemap/export"
	"routemap/layout"
	"routemap/persist"
)

func exportCmd() *cobra.Command {
	var format, from, out string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a route map to JSON, YAML, Mermaid or Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			g, err := readGraph(args[0], from)
			if err != nil {
				return err
			}
			data, err := render(g, f)
			if err != nil {
				return err
			}
			path, err := writeOutput(cmd.OutOrStdout(), out, f, data)
			if err != nil {
				return err
			}
			if path != "" {
				Good.Fprintf(cmd.ErrOrStderr(), "exported %d nodes to %s\n", len(g.Nodes), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml, mermaid, dot)")
	cmd.Flags().StringVar(&from, "from", "", "input format, detected when empty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (stdout when empty)")
	return cmd
}

func importCmd(opts *options) *cobra.Command {
	var format, out string
	var draft bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a route map or Mermaid flowchart as a route map file",
		Long: "Import reads any supported format and writes the native JSON file.\n" +
			"With --draft the result replaces the editor draft instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(args[0], format)
			if err != nil {
				return err
			}
			data, err := render(g, export.FormatJSON)
			if err != nil {
				return err
			}

			if draft {
				svc, err := openServices(cmd.Context(), opts.cfg)
				if err != nil {
					return err
				}
				defer svc.Close()
				if err := svc.local.Put(cmd.Context(), persist.DraftKey, []byte(data)); err != nil {
					return fmt.Errorf("store draft: %w", err)
				}
				svc.logger.Info("draft imported", "file", args[0], "nodes", len(g.Nodes))
				Good.Fprintf(cmd.ErrOrStderr(), "imported %d nodes as the editor draft\n", len(g.Nodes))
				return nil
			}

			path, err := writeOutput(cmd.OutOrStdout(), out, export.FormatJSON, data)
			if err != nil {
				return err
			}
			if path != "" {
				Good.Fprintf(cmd.ErrOrStderr(), "imported %d nodes to %s\n", len(g.Nodes), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json, yaml, mermaid), detected when empty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (stdout when empty)")
	cmd.Flags().BoolVar(&draft, "draft", false, "store as the editor draft")
	return cmd
}

func layoutCmd(opts *options) *cobra.Command {
	var out string
	var write bool
	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Arrange nodes in columns by distance from the start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(args[0], "")
			if err != nil {
				return err
			}
			layout.Apply(&g, opts.cfg.Editor.ColumnSpacing, opts.cfg.Editor.RowSpacing)

			f := export.FormatJSON
			if write {
				out = args[0]
				f = formatForPath(out)
			} else if out != "" {
				f = formatForPath(out)
			}
			data, err := render(g, f)
			if err != nil {
				return err
			}
			path, err := writeOutput(cmd.OutOrStdout(), out, f, data)
			if err != nil {
				return err
			}
			if path != "" {
				Good.Fprintf(cmd.ErrOrStderr(), "laid out %d nodes in %s\n", len(g.Nodes), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the input file")
	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			desc := export.GetFormatDescriptions()
			for _, f := range export.GetAvailableFormats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", f, Subtle.Sprint(desc[f]))
			}
		},
	}
}
