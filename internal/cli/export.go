package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	flowerr "github.com/flowcopy/flowcopy/pkg/errors"
	"github.com/flowcopy/flowcopy/pkg/pipeline"
	"github.com/flowcopy/flowcopy/pkg/tabular"
)

// exportCommand creates the export command, which serializes a flow into an
// interchange document.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		file    string
		format  string
		output  string
		account string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export [project-id]",
		Short: "Serialize a flow into a CSV or XML document",
		Long: `Serialize a content flow into a tabular interchange document.

Each message becomes one row carrying its content, canvas position, and the
derived sequence columns. The document round-trips through import without
losing content.`,
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
			if len(p.Options.Tones) == 0 {
				p.Options = c.Config.AdminOptions()
			}

			if format == "" {
				format = c.Config.Export.Format
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			sess, err := c.currentSession(account)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			res, err := runner.Export(ctx, p, pipeline.ExportOptions{
				SessionID: sess.ID,
				AccountID: account,
				Format:    tabular.Format(format),
				Refresh:   refresh,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Exported %d rows", res.RowCount))

			dest := output
			if dest == "" {
				dest = filepath.Join(c.Config.Export.Dir, res.Filename)
			}
			if err := flowerr.ValidateOutputPath(dest); err != nil {
				return err
			}
			if dir := filepath.Dir(dest); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(dest, []byte(res.Document), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			printSuccess("Exported %s", p.ID)
			printKeyValue("Token", res.Token)
			printFile(dest)
			if res.HasCycle {
				printWarning("the flow contains a cycle; order falls back to canvas position")
			}
			printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the project from a JSON snapshot")
	cmd.Flags().StringVar(&format, "format", "", "document format: csv or xml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: <project>-<timestamp>.<ext>)")
	cmd.Flags().StringVar(&account, "account", "", "account id stamped on every row")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached document exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the derived-result cache")
	return cmd
}
