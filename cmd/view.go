package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/strokefix/internal/domain"
	m "github.com/mouse-blink/strokefix/internal/model"
)

var errReportRequired = errors.New("--report is required")

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved report",
		Long:  "View a report written by an earlier run with --report.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reportFlag == "" {
				return errReportRequired
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Report: m.Path(reportFlag)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
