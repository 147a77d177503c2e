package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ImportDetector finds the icon symbols a file imports from one module.
type ImportDetector struct {
	module  string
	pattern *regexp.Regexp
}

// NewImportDetector compiles the import rule for module. The rule is line
// oriented: `.` never crosses a line break, the brace list may.
func NewImportDetector(module string) *ImportDetector {
	expr := fmt.Sprintf(`import\s+.*?\{([^}]+)\}.*?from\s+['"]%s['"]`, regexp.QuoteMeta(module))

	return &ImportDetector{module: module, pattern: regexp.MustCompile(expr)}
}

// Detect returns the raw, trimmed names of the first qualifying import
// statement and the offset where that statement starts. Later statements from
// the same module are not considered. ok is false when there is none.
func (d *ImportDetector) Detect(content []byte) (names []string, at int, ok bool) {
	loc := d.pattern.FindSubmatchIndex(content)
	if loc == nil {
		return nil, 0, false
	}

	list := string(content[loc[2]:loc[3]])
	for _, name := range strings.Split(list, ",") {
		names = append(names, strings.TrimSpace(name))
	}

	return names, loc[0], true
}

// Symbols keeps the names that can be matched as tags verbatim: empty tokens,
// `default` and aliased imports are dropped since the local name may differ
// from the imported one.
func Symbols(names []string) []string {
	var symbols []string

	for _, name := range names {
		if name == "" || name == "default" || strings.Contains(name, " as ") {
			continue
		}

		symbols = append(symbols, name)
	}

	return symbols
}
