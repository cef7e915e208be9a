package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/pipeline"
)

// orderCommand creates the order command, which derives and displays the
// send order for a flow.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		file    string
		noCache bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "order [project-id]",
		Short: "Derive the send order for a flow",
		Long: `Derive the deterministic send order for a content flow.

The order follows the sequential connections; ties break by canvas position
(left to right, then top to bottom). Messages joined by parallel connections
share a sequence number. Cycles are reported and broken by position.`,
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

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			info, err := runner.Sequence(ctx, p)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Ordered %d messages", len(info.OrderedIDs)))

			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}

			printKeyValue("Token", info.Token)
			if info.HasCycle {
				printWarning("the flow contains a cycle; order falls back to canvas position")
			}
			printOrderTable(p, info)
			printStats(len(p.Nodes), len(p.Edges), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the project from a JSON snapshot")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the derived-result cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sequence bundle as JSON")
	return cmd
}

// printOrderTable renders the display order as a styled table.
func printOrderTable(p flow.Project, info pipeline.SequenceInfo) {
	byID := map[string]string{}
	for _, n := range p.Nodes {
		title := n.Title
		if title == "" {
			title = n.ID
		}
		byID[n.ID] = title
	}

	rows := [][]string{}
	for _, id := range info.DisplayOrder {
		group := info.GroupByNode[id]
		if group == "" {
			group = "—"
		}
		rows = append(rows, []string{
			strconv.Itoa(info.FinalSequence[id]),
			id,
			byID[id],
			group,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Seq", "Message", "Title", "Parallel Group").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(t.Render())
}
