package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowcopy/flowcopy/pkg/render"
)

// renderCommand creates the render command, which draws a preview diagram of
// a flow.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		file     string
		output   string
		detailed bool
		dotOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "render [project-id]",
		Short: "Draw a preview diagram of a flow",
		Long: `Draw the flow graph as a node-link diagram.

Sequential connections appear as arrows, parallel connections as dashed
links, and parallel groups as clusters. The preview is a review artifact;
it never changes canvas positions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			var id string
			if len(args) > 0 {
				id = args[0]
			}
			p, err := c.resolveProject(ctx, st, file, id)
			if err != nil {
				return err
			}

			dot := render.ToDOT(p.Nodes, p.Edges, render.Options{Detailed: detailed})

			if dotOnly {
				if output == "" {
					fmt.Fprint(cmd.OutOrStdout(), dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return err
				}
				printFile(output)
				return nil
			}

			sp := newSpinner("rendering preview")
			sp.Start()
			svg, err := render.SVG(dot)
			sp.Stop()
			if err != nil {
				return err
			}

			dest := output
			if dest == "" {
				name := p.ID
				if name == "" {
					name = strings.TrimSuffix(file, ".json")
				}
				dest = name + ".svg"
			}
			if err := os.WriteFile(dest, svg, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}

			printSuccess("Rendered preview")
			printFile(dest)
			printStats(len(p.Nodes), len(p.Edges), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the project from a JSON snapshot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include sequence numbers and metadata in labels")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "emit Graphviz DOT instead of SVG")
	return cmd
}
