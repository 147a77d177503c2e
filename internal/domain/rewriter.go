package domain

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
)

// Rewriter inserts the target attribute into opening tags.
type Rewriter struct {
	token    string
	assigned *regexp.Regexp
}

// RewriteResult is the outcome of rewriting one file.
type RewriteResult struct {
	Content  []byte
	Inserted map[string]int
	Present  int
	Ignored  int
}

// Modified reports whether at least one occurrence was changed.
func (r RewriteResult) Modified() bool {
	return len(r.Inserted) > 0
}

// skipFunc reports whether the occurrence of symbol on line (1-based) must be
// left alone.
type skipFunc func(symbol string, line int) bool

// NewRewriter builds a Rewriter that appends attribute=value.
func NewRewriter(attribute, value string) *Rewriter {
	return &Rewriter{
		token:    attribute + "=" + value,
		assigned: regexp.MustCompile(`(?:^|[\s{}])` + regexp.QuoteMeta(attribute) + `\s*=`),
	}
}

// Rewrite processes symbols in order. Each symbol sees the text produced by the
// previous ones. skip may be nil.
func (r *Rewriter) Rewrite(content []byte, symbols []string, skip skipFunc) RewriteResult {
	result := RewriteResult{Content: content}

	for _, symbol := range symbols {
		var inserted int

		result.Content, inserted = r.rewriteSymbol(result.Content, symbol, skip, &result)
		if inserted > 0 {
			if result.Inserted == nil {
				result.Inserted = make(map[string]int)
			}

			result.Inserted[symbol] += inserted
		}
	}

	return result
}

func (r *Rewriter) rewriteSymbol(content []byte, symbol string, skip skipFunc, result *RewriteResult) ([]byte, int) {
	open := regexp.MustCompile(`<\s*` + regexp.QuoteMeta(symbol))
	lineStarts := computeLineStarts(content)

	var out bytes.Buffer

	last, pos, inserted := 0, 0, 0

	for pos < len(content) {
		loc := open.FindIndex(content[pos:])
		if loc == nil {
			break
		}

		start, nameEnd := pos+loc[0], pos+loc[1]

		tag, ok := scanTag(content, nameEnd)
		if !ok {
			pos = nameEnd
			continue
		}

		pos = tag.end

		if r.assigned.Match(tag.attrs) {
			result.Present++
			continue
		}

		if skip != nil && skip(symbol, lineOf(lineStarts, start)) {
			result.Ignored++
			continue
		}

		out.Write(content[last:start])
		out.WriteString(r.render(symbol, tag))

		last = tag.end
		inserted++
	}

	if inserted == 0 {
		return content, 0
	}

	out.Write(content[last:])

	return out.Bytes(), inserted
}

func (r *Rewriter) render(symbol string, tag tagMatch) string {
	body := strings.TrimSpace(string(tag.attrs) + " " + r.token)
	if tag.selfClosing {
		return "<" + symbol + " " + body + " />"
	}

	return "<" + symbol + " " + body + ">"
}

type tagMatch struct {
	attrs       []byte
	selfClosing bool
	end         int
}

// scanTag reads the rest of an opening tag starting right after the tag name.
// The terminating '>' is only accepted outside quoted strings and {...}
// expression containers. A name followed by anything other than whitespace,
// '>' or '/>' belongs to a different tag.
func scanTag(content []byte, i int) (tagMatch, bool) {
	if i >= len(content) {
		return tagMatch{}, false
	}

	switch c := content[i]; {
	case c == '>':
		return tagMatch{end: i + 1}, true
	case c == '/':
		if i+1 < len(content) && content[i+1] == '>' {
			return tagMatch{selfClosing: true, end: i + 2}, true
		}

		return tagMatch{}, false
	case !isSpace(c):
		return tagMatch{}, false
	}

	depth := 0

	var quote byte

	for j := i; j < len(content); j++ {
		c := content[j]

		if quote != 0 {
			switch c {
			case '\\':
				j++
			case quote:
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth > 0 {
				continue
			}

			attrs := bytes.TrimRight(content[i:j], " \t\r\n")
			if bytes.HasSuffix(attrs, []byte("/")) {
				attrs = bytes.TrimRight(attrs[:len(attrs)-1], " \t\r\n")
				return tagMatch{attrs: attrs, selfClosing: true, end: j + 1}, true
			}

			return tagMatch{attrs: content[i:j], end: j + 1}, true
		}
	}

	return tagMatch{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

// lineOf returns the 1-based line holding offset.
func lineOf(lineStarts []int, offset int) int {
	return sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > offset
	})
}
