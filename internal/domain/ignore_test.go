package domain

import (
	"testing"
)

func TestParseIgnoreDirective_All(t *testing.T) {
	r, ok := parseIgnoreDirective("//strokefix:ignore")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if !r.all || r.names != nil {
		t.Fatalf("expected all=true and names=nil")
	}
}

func TestParseIgnoreDirective_Names(t *testing.T) {
	r, ok := parseIgnoreDirective("// strokefix:ignore Trash, Edit ")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if r.all {
		t.Fatalf("expected all=false")
	}
	if len(r.names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(r.names))
	}
	if !r.ignores("Trash") || !r.ignores("Edit") {
		t.Fatalf("expected Trash and Edit")
	}
	if r.ignores("trash") {
		t.Fatalf("symbol names are case sensitive")
	}
}

func TestParseIgnoreDirective_BlockComment(t *testing.T) {
	r, ok := parseIgnoreDirective("/* strokefix:ignore Bell */")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if r.all {
		t.Fatalf("expected all=false")
	}
	if !r.ignores("Bell") {
		t.Fatalf("expected Bell")
	}
}

func TestParseIgnoreDirective_NotADirective(t *testing.T) {
	for _, text := range []string{
		"// plain comment",
		"// strokefix:ignored",
		"/* strokefix:ignore-file */",
	} {
		if _, ok := parseIgnoreDirective(text); ok {
			t.Errorf("parseIgnoreDirective(%q) unexpectedly matched", text)
		}
	}
}

func TestBuildIgnoreIndex_FileAndLineScopes(t *testing.T) {
	const src = "// strokefix:ignore Bell\n" + // line 1, file scope
		"import { Bell, Trash, Edit } from 'lucide-react';\n" + // line 2
		"\n" +
		"export const A = () => (\n" + // line 4
		"  <div>\n" +
		"    {/* strokefix:ignore Trash */}\n" + // line 6, leading -> line 7
		"    <Trash />\n" + // line 7
		"    <Edit /> {/* strokefix:ignore */}\n" + // line 8, trailing -> line 8
		"    <Trash />\n" + // line 9
		"  </div>\n" +
		");\n"

	_, at, ok := NewImportDetector("lucide-react").Detect([]byte(src))
	if !ok {
		t.Fatalf("expected import to be detected")
	}

	ix := buildIgnoreIndex([]byte(src), at)

	if !ix.file.ignores("Bell") || ix.file.ignores("Trash") {
		t.Fatalf("file rule should cover Bell only: %+v", ix.file)
	}

	cases := []struct {
		symbol string
		line   int
		want   bool
	}{
		{"Bell", 42, true},
		{"Trash", 7, true},
		{"Edit", 7, false},
		{"Edit", 8, true},
		{"Trash", 8, true},
		{"Trash", 9, false},
		{"Trash", 6, false},
	}

	for _, tc := range cases {
		if got := ix.ignores(tc.symbol, tc.line); got != tc.want {
			t.Errorf("ignores(%s, %d) = %v, want %v", tc.symbol, tc.line, got, tc.want)
		}
	}
}

func TestMergeIgnoreRule(t *testing.T) {
	var dst ignoreRule

	mergeIgnoreRule(&dst, ignoreRule{names: map[string]struct{}{"Trash": {}}})
	mergeIgnoreRule(&dst, ignoreRule{names: map[string]struct{}{"Edit": {}}})

	if !dst.ignores("Trash") || !dst.ignores("Edit") || dst.ignores("Bell") {
		t.Fatalf("unexpected merged names: %+v", dst.names)
	}

	mergeIgnoreRule(&dst, ignoreRule{all: true})

	if !dst.all || dst.names != nil {
		t.Fatalf("expected all rule after merging all")
	}
}
