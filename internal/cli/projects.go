package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// projectsCommand creates the projects command group for inspecting the
// configured store.
func (c *CLI) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect the configured project store",
	}

	cmd.AddCommand(c.projectsListCommand())
	cmd.AddCommand(c.projectsShowCommand())
	cmd.AddCommand(c.projectsDeleteCommand())
	return cmd
}

func (c *CLI) projectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			ids, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printWarning("the store is empty")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func (c *CLI) projectsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print a stored project as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			p, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func (c *CLI) projectsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
