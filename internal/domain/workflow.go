// Package domain contains the strokefix workflow: discovering component
// sources, detecting icon imports and inserting the styling attribute.
package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/strokefix/internal/adapter"
	"github.com/mouse-blink/strokefix/internal/config"
	"github.com/mouse-blink/strokefix/internal/controller"
	m "github.com/mouse-blink/strokefix/internal/model"
)

const defaultFileMode os.FileMode = 0o644

var errRootMissing = errors.New("root not found, skipping")

// EstimateArgs holds the arguments of a dry run.
type EstimateArgs struct {
	Config config.Config
	Report m.Path // optional YAML report destination
}

// ApplyArgs holds the arguments of a rewriting run.
type ApplyArgs struct {
	Config config.Config
	Report m.Path
}

// ViewArgs holds the arguments for displaying a saved report.
type ViewArgs struct {
	Report m.Path
}

// Workflow defines the operations exposed to the CLI.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Apply(ctx context.Context, args ApplyArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs      adapter.SourceFSAdapter
	reports adapter.ReportStore
	ui      controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.SourceFSAdapter, reports adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{fs: fs, reports: reports, ui: ui}
}

// plan holds the rules compiled once per run.
type plan struct {
	cfg      config.Config
	imports  *ImportDetector
	rewriter *Rewriter
}

func newPlan(cfg config.Config) *plan {
	return &plan{
		cfg:      cfg,
		imports:  NewImportDetector(cfg.Module),
		rewriter: NewRewriter(cfg.Attribute, cfg.Value),
	}
}

// Apply rewrites every qualifying file and reports each one written.
func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	cfg := args.Config
	if cfg.DryRun {
		return w.Estimate(ctx, EstimateArgs(args))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithApplyMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	w.ui.DisplayRunInfo(rootPaths(cfg.Roots), cfg.Parallel)

	results, err := w.process(ctx, newPlan(cfg), true)
	if err != nil {
		return err
	}

	if err := w.saveReport(ctx, args.Report, results); err != nil {
		return err
	}

	summary := m.Summarize(cfg.Module, cfg.Token(), false, results)
	w.ui.DisplayCompletion(summary)

	return failureError(summary)
}

// Estimate runs detection without writing and displays pending changes.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	cfg := args.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithEstimateMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	w.ui.DisplayRunInfo(rootPaths(cfg.Roots), cfg.Parallel)

	results, err := w.process(ctx, newPlan(cfg), false)
	if err != nil {
		return w.ui.DisplayEstimation(nil, err)
	}

	if err := w.saveReport(ctx, args.Report, results); err != nil {
		return err
	}

	if err := w.ui.DisplayEstimation(pending(results), nil); err != nil {
		return err
	}

	return failureError(m.Summarize(cfg.Module, cfg.Token(), true, results))
}

// View displays a report written by an earlier run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	results, err := w.reports.LoadReports(ctx, args.Report)
	if err != nil {
		return err
	}

	return w.ui.DisplayEstimation(pending(results), nil)
}

// process streams candidate files into a bounded pool. With a single worker
// files are handled strictly one after another in walk order.
func (w *workflow) process(ctx context.Context, p *plan, write bool) ([]m.FileResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parallel)

	var (
		mu      sync.Mutex
		results []m.FileResult
	)

	walkErr := w.sources(gctx, p.cfg, func(src m.Source, listErr error) error {
		if err := gctx.Err(); err != nil {
			return err
		}

		if listErr != nil {
			if !p.cfg.KeepGoing {
				return listErr
			}

			mu.Lock()
			defer mu.Unlock()

			results = append(results, m.FileResult{Source: src, Error: listErr.Error()})
			w.ui.DisplayWarning(src.Origin, listErr)

			return nil
		}

		g.Go(func() error {
			res, err := w.processFile(gctx, p, src, write)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if !p.cfg.KeepGoing {
					return err
				}

				res.Error = err.Error()
				w.ui.DisplayWarning(src.Origin, err)
			}

			results = append(results, res)

			if res.Written {
				w.ui.DisplayRewritten(res)
			}

			return nil
		})

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if walkErr != nil {
		return nil, walkErr
	}

	return results, nil
}

// sources walks every configured root and calls fn for each candidate file.
// A root that does not exist is reported and skipped. A directory that cannot
// be listed is passed to fn with its error. Files reachable from several roots
// are visited once.
func (w *workflow) sources(ctx context.Context, cfg config.Config, fn func(m.Source, error) error) error {
	seen := make(map[m.Path]struct{})

	for _, raw := range cfg.Roots {
		root, err := adapter.NormalizeRootPath(raw)
		if err != nil {
			return fmt.Errorf("root %s: %w", raw, err)
		}

		exists, err := w.fs.Exists(ctx, root)
		if err == nil && !exists {
			err = errRootMissing
		}

		if err != nil {
			w.ui.DisplayWarning(root, err)
			continue
		}

		var gitignore adapter.Matcher

		if cfg.UseGitignore {
			gitignore, err = w.fs.Gitignore(root)
			if err != nil {
				w.ui.DisplayWarning(root, err)
			}
		}

		err = w.fs.Walk(ctx, root, cfg.SkipDirs, func(path m.Path, info os.FileInfo, listErr error) error {
			if listErr != nil {
				return fn(m.Source{Origin: path, Root: root}, fmt.Errorf("walk %s: %w", path, listErr))
			}

			if !hasExtension(string(path), cfg.Extensions) {
				return nil
			}

			if gitignore != nil && ignoredByGit(gitignore, root, path) {
				return nil
			}

			if _, dup := seen[path]; dup {
				return nil
			}

			seen[path] = struct{}{}

			mode := defaultFileMode
			if info != nil && info.Mode().IsRegular() && info.Mode().Perm() != 0 {
				mode = info.Mode().Perm()
			}

			return fn(m.Source{Origin: path, Root: root, Mode: mode}, nil)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// processFile reads one file, inserts missing attributes and writes it back
// only when something changed.
func (w *workflow) processFile(ctx context.Context, p *plan, src m.Source, write bool) (m.FileResult, error) {
	res := m.FileResult{Source: src}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	content, err := w.fs.ReadFile(ctx, src.Origin)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", src.Origin, err)
	}

	if hash, err := adapter.Fingerprint(content); err == nil {
		res.Source.Hash = hash
	}

	names, importAt, ok := p.imports.Detect(content)
	if !ok {
		return res, nil
	}

	res.Symbols = Symbols(names)
	if len(res.Symbols) == 0 {
		return res, nil
	}

	ignores := buildIgnoreIndex(content, importAt)

	symbols := res.Symbols
	if !ignores.file.empty() {
		symbols = nil

		for _, symbol := range res.Symbols {
			if !ignores.file.ignores(symbol) {
				symbols = append(symbols, symbol)
			}
		}

		if len(symbols) == 0 {
			res.Excluded = true
			return res, nil
		}
	}

	out := p.rewriter.Rewrite(content, symbols, ignores.ignores)
	res.Inserted = out.Inserted
	res.Present = out.Present
	res.Ignored = out.Ignored

	if !out.Modified() || !write {
		return res, nil
	}

	if err := w.fs.WriteFile(ctx, src.Origin, out.Content, src.Mode); err != nil {
		return res, fmt.Errorf("write %s: %w", src.Origin, err)
	}

	res.Written = true

	return res, nil
}

// saveReport stores the files that had a qualifying import or failed.
func (w *workflow) saveReport(ctx context.Context, path m.Path, results []m.FileResult) error {
	if path == "" {
		return nil
	}

	var relevant []m.FileResult

	for _, r := range results {
		if len(r.Symbols) > 0 || r.Failed() {
			relevant = append(relevant, r)
		}
	}

	m.SortResults(relevant)

	return w.reports.SaveReports(ctx, path, relevant)
}

func pending(results []m.FileResult) []m.FileResult {
	var out []m.FileResult

	for _, r := range results {
		if r.Changes() > 0 || r.Failed() {
			out = append(out, r)
		}
	}

	m.SortResults(out)

	return out
}

func failureError(summary m.Summary) error {
	if summary.Failed == 0 {
		return nil
	}

	return fmt.Errorf("%d file(s) could not be processed", summary.Failed)
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

func ignoredByGit(gitignore adapter.Matcher, root, path m.Path) bool {
	rel, err := filepath.Rel(string(root), string(path))
	if err != nil {
		return false
	}

	return gitignore.MatchesPath(filepath.ToSlash(rel))
}

func rootPaths(roots []string) []m.Path {
	paths := make([]m.Path, 0, len(roots))
	for _, root := range roots {
		paths = append(paths, m.Path(root))
	}

	return paths
}
