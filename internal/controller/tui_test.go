package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/strokefix/internal/model"
)

func TestProgressModel_Update(t *testing.T) {
	t.Run("counts rewritten files and warnings", func(t *testing.T) {
		var model tea.Model = newProgressModel(ModeApply)

		model, _ = model.Update(runInfoMsg{roots: 2, threads: 3})
		model, _ = model.Update(rewrittenMsg{path: "a.tsx", changes: 2})
		model, _ = model.Update(rewrittenMsg{path: "b.tsx", changes: 1})
		model, _ = model.Update(warningMsg{})

		pm := model.(progressModel)
		if pm.rewritten != 2 || pm.warnings != 1 {
			t.Fatalf("rewritten = %d, warnings = %d", pm.rewritten, pm.warnings)
		}

		view := pm.View()
		for _, want := range []string{"Rewriting 2 root(s)", "with 3 workers", "2 updated", "1 warning(s)"} {
			if !strings.Contains(view, want) {
				t.Fatalf("view missing %q: %q", want, view)
			}
		}
	})

	t.Run("estimate mode label", func(t *testing.T) {
		view := newProgressModel(ModeEstimate).View()
		if !strings.Contains(view, "Scanning") {
			t.Fatalf("view missing Scanning label: %q", view)
		}
	})

	t.Run("completion quits with summary", func(t *testing.T) {
		var model tea.Model = newProgressModel(ModeApply)

		model, cmd := model.Update(completionMsg{summary: m.Summary{
			Module:    "lucide-react",
			Token:     "strokeWidth={1.5}",
			Rewritten: 3,
			Inserted:  7,
		}})
		if cmd == nil {
			t.Fatalf("expected quit command")
		}

		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg")
		}

		view := model.View()
		for _, want := range []string{"Done applying strokeWidth={1.5} to lucide-react icons!", "3 file(s) updated", "7 attribute(s)"} {
			if !strings.Contains(view, want) {
				t.Fatalf("view missing %q: %q", want, view)
			}
		}
	})

	t.Run("quit without summary renders nothing", func(t *testing.T) {
		var model tea.Model = newProgressModel(ModeApply)

		model, _ = model.Update(quitMsg{})
		if got := model.View(); got != "" {
			t.Fatalf("view = %q, want empty", got)
		}
	})
}

func TestTUI_WithoutProgram(t *testing.T) {
	t.Run("rewritten and completion print directly", func(t *testing.T) {
		var buf, errBuf bytes.Buffer
		ui := NewTUI(&buf, &errBuf)

		ui.DisplayRewritten(m.FileResult{
			Source:   m.Source{Origin: "app/page.tsx"},
			Inserted: map[string]int{"Trash": 1},
		})
		ui.DisplayWarning("app/broken.tsx", errors.New("permission denied"))
		ui.DisplayCompletion(m.Summary{Module: "lucide-react", Token: "strokeWidth={1.5}", Failed: 1})
		ui.Close()

		got := buf.String()
		for _, want := range []string{
			"Updated",
			"app/page.tsx",
			"Done applying strokeWidth={1.5} to lucide-react icons!",
			"1 failed",
		} {
			if !strings.Contains(got, want) {
				t.Fatalf("output missing %q\noutput:\n%s", want, got)
			}
		}

		if strings.Contains(got, "broken.tsx") {
			t.Fatalf("warning written to stdout:\n%s", got)
		}

		if !strings.Contains(errBuf.String(), "warning: app/broken.tsx: permission denied") {
			t.Fatalf("stderr missing warning: %q", errBuf.String())
		}
	})

	t.Run("estimation lists pending files", func(t *testing.T) {
		var buf bytes.Buffer
		ui := NewTUI(&buf, &bytes.Buffer{})

		err := ui.DisplayEstimation([]m.FileResult{
			{Source: m.Source{Origin: "app/page.tsx", Hash: "0123456789abcdef"}, Inserted: map[string]int{"Trash": 2, "Edit": 1}},
		}, nil)
		if err != nil {
			t.Fatalf("DisplayEstimation() error = %v", err)
		}

		got := buf.String()
		for _, want := range []string{"Pending changes", "app/page.tsx", "0123456789abcdef", "Total: 3 change(s) in 1 file(s)"} {
			if !strings.Contains(got, want) {
				t.Fatalf("output missing %q\noutput:\n%s", want, got)
			}
		}
	})

	t.Run("estimation error is returned", func(t *testing.T) {
		var buf bytes.Buffer
		boom := errors.New("boom")

		if err := NewTUI(&buf, &bytes.Buffer{}).DisplayEstimation(nil, boom); !errors.Is(err, boom) {
			t.Fatalf("DisplayEstimation() error = %v", err)
		}

		if !strings.Contains(buf.String(), "estimation error: boom") {
			t.Fatalf("unexpected output: %q", buf.String())
		}
	})
}
