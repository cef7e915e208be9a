package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcopy/flowcopy/pkg/flow/ident"
	"github.com/flowcopy/flowcopy/pkg/sequence"
)

// identCommand creates the ident command, which prints the identity token of
// a flow without the rest of the sequence bundle.
func (c *CLI) identCommand() *cobra.Command {
	var (
		file string
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "ident [project-id|text]",
		Short: "Print the identity token for a flow",
		Long: `Print the identity token for a content flow.

The token covers the reading order and the sequential connections; moving
messages around the canvas without changing the order keeps it stable. With
--raw the argument is hashed as a literal payload instead, which is useful
for checking documents by hand.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				if len(args) != 1 {
					return fmt.Errorf("--raw requires a payload argument")
				}
				fmt.Fprintln(cmd.OutOrStdout(), sequence.IdentityPrefix+ident.Hash(args[0]))
				return nil
			}

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

			ord := sequence.Order(p.Nodes, p.Edges)
			fmt.Fprintln(cmd.OutOrStdout(), sequence.Identity(ord.OrderedIDs, p.Nodes, p.Edges))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the project from a JSON snapshot")
	cmd.Flags().BoolVar(&raw, "raw", false, "hash the argument as a literal payload")
	return cmd
}
