package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/strokefix/internal/model"
)

var (
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// progressModel shows a spinner while files are processed. Rewritten paths are
// printed above it by the program, so the live view stays one line tall.
type progressModel struct {
	mode      StartMode
	spinner   spinner.Model
	roots     int
	threads   int
	rewritten int
	warnings  int
	summary   *m.Summary
	quitting  bool
}

func newProgressModel(mode StartMode) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return progressModel{mode: mode, spinner: s, threads: 1}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		pm.roots = msg.roots
		pm.threads = msg.threads

		return pm, nil

	case rewrittenMsg:
		pm.rewritten++
		return pm, nil

	case warningMsg:
		pm.warnings++
		return pm, nil

	case completionMsg:
		summary := msg.summary
		pm.summary = &summary
		pm.quitting = true

		return pm, tea.Quit

	case quitMsg:
		pm.quitting = true
		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			pm.quitting = true
			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	if pm.quitting {
		if pm.summary != nil {
			return renderCompletion(*pm.summary) + "\n"
		}

		return ""
	}

	label := "Rewriting"
	if pm.mode == ModeEstimate {
		label = "Scanning"
	}

	status := fmt.Sprintf("%s %s %d root(s)", pm.spinner.View(), label, pm.roots)
	if pm.threads > 1 {
		status += fmt.Sprintf(" with %d workers", pm.threads)
	}

	status += fmt.Sprintf(" · %d updated", pm.rewritten)
	if pm.warnings > 0 {
		status += warnStyle.Render(fmt.Sprintf(" · %d warning(s)", pm.warnings))
	}

	return status + "\n"
}

func renderRewritten(path m.Path, changes int) string {
	return fmt.Sprintf("%s %s", doneStyle.Render("Updated"), pathStyle.Render(string(path))) +
		hashStyle.Render(fmt.Sprintf(" (+%d)", changes))
}

func renderWarning(path m.Path, err error) string {
	return warnStyle.Render(fmt.Sprintf("warning: %s: %v", path, err))
}

func renderCompletion(summary m.Summary) string {
	line := doneStyle.Render(fmt.Sprintf("Done applying %s to %s icons!", summary.Token, summary.Module))
	line += fmt.Sprintf(" %d file(s) updated, %d attribute(s) inserted", summary.Rewritten, summary.Inserted)

	if summary.Failed > 0 {
		line += warnStyle.Render(fmt.Sprintf(", %d failed", summary.Failed))
	}

	return line
}

func renderEstimation(results []m.FileResult) string {
	if len(results) == 0 {
		return "Nothing to update\n"
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Pending changes"))
	b.WriteString("\n")

	total := 0

	for _, r := range results {
		count := fmt.Sprintf("%d", r.Changes())
		if r.Failed() {
			count = warnStyle.Render("error")
		}

		b.WriteString(countStyle.Render(count))
		b.WriteString("  ")
		b.WriteString(pathStyle.Render(string(r.Source.Origin)))

		if r.Source.Hash != "" {
			b.WriteString("  ")
			b.WriteString(hashStyle.Render(r.Source.Hash))
		}

		b.WriteString("\n")

		total += r.Changes()
	}

	b.WriteString(fmt.Sprintf("\nTotal: %d change(s) in %d file(s)\n", total, len(results)))

	return b.String()
}
