package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/strokefix/internal/domain"
	m "github.com/mouse-blink/strokefix/internal/model"
)

const listLongDescription = `List the files that would be rewritten and how many tags each one would
receive, without writing anything. The same as running strokefix --dry-run.`

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [roots...]",
		Short: "List files with pending changes",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args)
			if err != nil {
				return err
			}

			cfg.DryRun = true

			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{
				Config: cfg,
				Report: m.Path(reportFlag),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
