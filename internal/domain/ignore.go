package domain

import (
	"regexp"
	"strings"
)

const ignoreDirective = "strokefix:ignore"

// commentPattern matches line comments and block comments, including the
// {/* ... */} form used inside JSX.
var commentPattern = regexp.MustCompile(`//[^\n]*|/\*[\s\S]*?\*/`)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(symbol string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[symbol]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.names) == 0
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective understands `// strokefix:ignore` and
// `/* strokefix:ignore Trash, Edit */`. Without names every symbol is ignored.
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimPrefix(s, ignoreDirective)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// strokefix:ignored, strokefix:ignore-me, ...
		return ignoreRule{}, false
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

// ignoreIndex records directives for one file. A directive above the first
// qualifying import covers the file; anywhere else it covers its own line when
// it trails code, or the next line when it stands alone.
type ignoreIndex struct {
	file ignoreRule
	line map[int]ignoreRule
}

func (ix ignoreIndex) ignores(symbol string, line int) bool {
	if ix.file.ignores(symbol) {
		return true
	}

	rule, ok := ix.line[line]

	return ok && rule.ignores(symbol)
}

func buildIgnoreIndex(content []byte, importAt int) ignoreIndex {
	ix := ignoreIndex{line: make(map[int]ignoreRule)}
	lineStarts := computeLineStarts(content)

	for _, loc := range commentPattern.FindAllIndex(content, -1) {
		rule, ok := parseIgnoreDirective(string(content[loc[0]:loc[1]]))
		if !ok {
			continue
		}

		if loc[0] < importAt {
			mergeIgnoreRule(&ix.file, rule)
			continue
		}

		line := lineOf(lineStarts, loc[0])

		target := line
		if isLeadingComment(line, loc[0], lineStarts, content) {
			target = line + 1
		}

		current := ix.line[target]
		mergeIgnoreRule(&current, rule)
		ix.line[target] = current
	}

	return ix
}

// isLeadingComment reports whether only indentation (or the opening brace of a
// JSX comment) precedes the comment on its line.
func isLeadingComment(line int, commentOffset int, lineStarts []int, content []byte) bool {
	if line <= 0 || line > len(lineStarts) {
		return false
	}

	start := lineStarts[line-1]
	if commentOffset < start || commentOffset > len(content) {
		return false
	}

	for _, b := range content[start:commentOffset] {
		if !isSpace(b) && b != '{' {
			return false
		}
	}

	return true
}
