package controller

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/strokefix/internal/model"
)

// SimpleUI implements UI with plain lines written to the cobra command output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplayRunInfo mentions the worker count when files are processed in parallel.
func (s *SimpleUI) DisplayRunInfo(roots []m.Path, threads int) {
	if threads <= 1 {
		return
	}

	s.printf("Scanning %d root(s) with %d workers\n", len(roots), threads)
}

// DisplayWarning prints a non fatal problem to stderr.
func (s *SimpleUI) DisplayWarning(path m.Path, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: %s: %v\n", path, err)
}

// DisplayRewritten prints the path of a rewritten file.
func (s *SimpleUI) DisplayRewritten(result m.FileResult) {
	s.printf("Updated %s\n", result.Source.Origin)
}

// DisplayCompletion prints the final line of a run.
func (s *SimpleUI) DisplayCompletion(summary m.Summary) {
	s.printf("Done applying %s to %s icons!\n", summary.Token, summary.Module)
}

// DisplayEstimation prints a table of files with pending changes, or the error.
func (s *SimpleUI) DisplayEstimation(results []m.FileResult, err error) error {
	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	if len(results) == 0 {
		s.printf("Nothing to update\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Changes", "Hash"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	total := 0

	for _, r := range results {
		changes := fmt.Sprintf("%d", r.Changes())
		if r.Failed() {
			changes = "error"
		}

		table.Append([]string{string(r.Source.Origin), changes, r.Source.Hash})
		total += r.Changes()
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d", total),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
