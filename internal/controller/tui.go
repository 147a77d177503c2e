package controller

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/strokefix/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output    io.Writer
	errOutput io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI. Progress goes to output, warnings to errOutput.
func NewTUI(output, errOutput io.Writer) *TUI {
	return &TUI{output: output, errOutput: errOutput}
}

// Start launches the progress program in the background.
func (t *TUI) Start(options ...StartOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	cfg := newStartConfig(options...)
	program := tea.NewProgram(newProgressModel(cfg.mode), tea.WithOutput(t.output), tea.WithInput(nil))
	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	t.program, t.done = program, done

	return nil
}

// Close stops the program and waits for its final render.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(quitMsg{})
	<-done
}

// DisplayRunInfo records the scanned roots and worker count.
func (t *TUI) DisplayRunInfo(roots []m.Path, threads int) {
	t.send(runInfoMsg{roots: len(roots), threads: threads}, "")
}

// DisplayWarning prints a non fatal problem to errOutput and counts it in the
// progress line.
func (t *TUI) DisplayWarning(path m.Path, err error) {
	t.mu.Lock()
	_, _ = fmt.Fprintln(t.errOutput, renderWarning(path, err))
	t.mu.Unlock()

	t.send(warningMsg{}, "")
}

// DisplayRewritten prints a rewritten path above the progress line.
func (t *TUI) DisplayRewritten(result m.FileResult) {
	t.send(rewrittenMsg{path: result.Source.Origin, changes: result.Changes()}, renderRewritten(result.Source.Origin, result.Changes()))
}

// DisplayCompletion ends the program with the run summary.
func (t *TUI) DisplayCompletion(summary m.Summary) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil || exited(done) {
		_, _ = fmt.Fprintln(t.output, renderCompletion(summary))
		return
	}

	program.Send(completionMsg{summary: summary})
	<-done
}

// DisplayEstimation stops the progress program and prints pending changes.
func (t *TUI) DisplayEstimation(results []m.FileResult, err error) error {
	t.Close()

	if err != nil {
		_, _ = fmt.Fprintln(t.output, warnStyle.Render(fmt.Sprintf("estimation error: %v", err)))
		return err
	}

	_, err = fmt.Fprint(t.output, renderEstimation(results))

	return err
}

// send delivers msg to the running program and prints line above it. Without
// a running program the line is written directly.
func (t *TUI) send(msg tea.Msg, line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program == nil || exited(t.done) {
		if line != "" {
			_, _ = fmt.Fprintln(t.output, line)
		}

		return
	}

	if line != "" {
		t.program.Println(line)
	}

	t.program.Send(msg)
}

func exited(done chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
