package model

import "sort"

// FileResult holds the outcome of processing a single candidate file.
type FileResult struct {
	Source Source `yaml:"source"`
	// Symbols lists the qualifying names taken from the first import statement.
	Symbols []string `yaml:"symbols,omitempty"`
	// Inserted counts, per symbol, the occurrences that received the attribute
	// (or would receive it during a dry run).
	Inserted map[string]int `yaml:"inserted,omitempty"`
	Present  int            `yaml:"present,omitempty"` // occurrences already carrying the attribute
	Ignored  int            `yaml:"ignored,omitempty"` // occurrences skipped by an ignore directive
	// Excluded is true when a file level ignore directive covers every symbol.
	Excluded bool   `yaml:"excluded,omitempty"`
	Written  bool   `yaml:"written"`
	Error    string `yaml:"error,omitempty"`
}

// Changes returns the total number of inserted attributes.
func (r FileResult) Changes() int {
	total := 0
	for _, n := range r.Inserted {
		total += n
	}

	return total
}

// Failed reports whether processing the file ended with an I/O error.
func (r FileResult) Failed() bool {
	return r.Error != ""
}

// Summary aggregates the results of a whole run.
type Summary struct {
	Module    string
	Token     string
	DryRun    bool
	Scanned   int // candidate files read
	Matched   int // files with a qualifying import
	Rewritten int // files written (or that would be written)
	Inserted  int // attributes inserted across all files
	Failed    int
}

// Summarize builds a Summary from per-file results.
func Summarize(module, token string, dryRun bool, results []FileResult) Summary {
	s := Summary{Module: module, Token: token, DryRun: dryRun}

	for _, r := range results {
		if r.Failed() {
			s.Failed++
			continue
		}

		s.Scanned++

		if len(r.Symbols) > 0 {
			s.Matched++
		}

		if changes := r.Changes(); changes > 0 {
			s.Rewritten++
			s.Inserted += changes
		}
	}

	return s
}

// SortResults orders results by path for stable display.
func SortResults(results []FileResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Source.Origin < results[j].Source.Origin
	})
}
