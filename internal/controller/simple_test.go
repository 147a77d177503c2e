package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/strokefix/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func TestSimpleUI_DisplayRewrittenAndCompletion(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	if err := ui.Start(WithApplyMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayRunInfo([]m.Path{"."}, 1)
	ui.DisplayRewritten(m.FileResult{Source: m.Source{Origin: "/shop/admin-dashboard/components/Header.tsx"}})
	ui.DisplayCompletion(m.Summary{Module: "lucide-react", Token: "strokeWidth={1.5}"})
	ui.Close()

	want := "Updated /shop/admin-dashboard/components/Header.tsx\n" +
		"Done applying strokeWidth={1.5} to lucide-react icons!\n"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestSimpleUI_DisplayRunInfo_Parallel(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayRunInfo([]m.Path{"a", "b"}, 4)

	if !strings.Contains(out.String(), "Scanning 2 root(s) with 4 workers") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestSimpleUI_DisplayWarning(t *testing.T) {
	cmd, out, errOut := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayWarning("/missing", errors.New("root not found, skipping"))

	if out.Len() != 0 {
		t.Fatalf("warning leaked to stdout: %q", out.String())
	}

	if !strings.Contains(errOut.String(), "warning: /missing: root not found, skipping") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestSimpleUI_DisplayEstimation_PrintsTable(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	results := []m.FileResult{
		{Source: m.Source{Origin: "path/a.tsx", Hash: "00000000000000aa"}, Inserted: map[string]int{"Trash": 2}},
		{Source: m.Source{Origin: "path/b.tsx"}, Inserted: map[string]int{"Edit": 1}},
		{Source: m.Source{Origin: "path/c.tsx"}, Error: "permission denied"},
	}

	if err := ui.DisplayEstimation(results, nil); err != nil {
		t.Fatalf("DisplayEstimation() error = %v", err)
	}

	output := out.String()

	for _, want := range []string{
		"path/a.tsx",
		"path/b.tsx",
		"path/c.tsx",
		"00000000000000aa",
		"error",
		"TOTAL FILES 3",
		"3",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayEstimation_Empty(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	if err := ui.DisplayEstimation(nil, nil); err != nil {
		t.Fatalf("DisplayEstimation() error = %v", err)
	}

	if !strings.Contains(out.String(), "Nothing to update") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestSimpleUI_DisplayEstimation_Error(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)
	boom := errors.New("boom")

	if err := ui.DisplayEstimation(nil, boom); !errors.Is(err, boom) {
		t.Fatalf("DisplayEstimation() error = %v, want %v", err, boom)
	}

	if !strings.Contains(out.String(), "estimation error: boom") {
		t.Fatalf("output missing error message\noutput:\n%s", out.String())
	}
}
