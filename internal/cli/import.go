package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/tabular"
)

// importCommand creates the import command, which rebuilds a flow from an
// interchange document.
func (c *CLI) importCommand() *cobra.Command {
	var (
		project string
		output  string
		save    bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Rebuild a flow from a CSV or XML document",
		Long: `Rebuild a content flow from an interchange document.

Rows are matched against the target project id; content is recovered
verbatim, positions fall back to a simple horizontal layout when missing,
and connections are restored from the embedded edge data. Sequence columns
in the file are ignored; order is always re-derived.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			if project == "" {
				if project, err = discoverProject(path, string(content)); err != nil {
					return err
				}
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			res, err := runner.Import(ctx, path, string(content), project)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported %d rows", res.RowCount))

			p := flow.Project{
				ID:      project,
				Nodes:   res.Reconciled.Nodes,
				Edges:   res.Reconciled.Edges,
				Options: res.Reconciled.Options,
			}

			if save {
				st, err := c.newStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close(ctx)

				if existing, err := st.Get(ctx, project); err == nil {
					p.Name = existing.Name
				}
				if err := st.Put(ctx, p); err != nil {
					return err
				}
				printSuccess("Saved %s to the store", project)
			}

			if output != "" {
				if err := writeProjectFile(output, p); err != nil {
					return fmt.Errorf("write project snapshot: %w", err)
				}
				printFile(output)
			}

			if !save && output == "" {
				if err := printJSON(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}

			printStats(len(p.Nodes), len(p.Edges), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "target project id (default: discovered from the file)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the rebuilt project as a JSON snapshot")
	cmd.Flags().BoolVar(&save, "save", false, "save the rebuilt project to the store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the derived-result cache")
	return cmd
}

// discoverProject inspects the document for project ids when --project was
// not given. A single id is used directly; several launch the picker.
func discoverProject(filename, content string) (string, error) {
	var rows []tabular.Row
	switch tabular.DetectFormat(filename, content) {
	case tabular.FormatCSV:
		rows = tabular.ParseCSV(content)
	case tabular.FormatXML:
		parsed, err := tabular.ParseXML(content)
		if err != nil {
			return "", fmt.Errorf("parse document: %w", err)
		}
		rows = parsed
	default:
		return "", fmt.Errorf("cannot determine the format of %q; pass --project explicitly", filename)
	}

	entriesByID := map[string]*projectEntry{}
	var ids []string
	for _, r := range rows {
		id := strings.TrimSpace(r.ProjectID)
		if id == "" {
			continue
		}
		e, ok := entriesByID[id]
		if !ok {
			e = &projectEntry{ID: id, Name: r.ProjectName}
			if s := strings.TrimSpace(r.EdgesJSON); s != "" {
				var edges []flow.Edge
				if err := json.Unmarshal([]byte(s), &edges); err == nil {
					e.Edges = len(edges)
				}
			}
			entriesByID[id] = e
			ids = append(ids, id)
		}
		e.Nodes++
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("the file carries no project ids; pass --project explicitly")
	case 1:
		return ids[0], nil
	}

	slices.Sort(ids)
	entries := make([]projectEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, *entriesByID[id])
	}
	return pickEntry(entries)
}
