package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/strokefix/internal/domain"
	m "github.com/mouse-blink/strokefix/internal/model"
)

const runLongDescription = `Rewrite every component file under the given roots, adding the attribute to
icon tags that do not carry it yet. Each rewritten file is printed as it is
written. Files that need no change are never opened for writing.`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [roots...]",
		Short: "Rewrite icon tags in place",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args)
			if err != nil {
				return err
			}

			cfg.DryRun = false

			return workflow.Apply(cmd.Context(), domain.ApplyArgs{
				Config: cfg,
				Report: m.Path(reportFlag),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
