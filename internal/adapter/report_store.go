package adapter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/strokefix/internal/model"
)

const reportVersion = 1

// ReportStore persists and retrieves per-file run results.
type ReportStore interface {
	SaveReports(ctx context.Context, path m.Path, results []m.FileResult) error
	LoadReports(ctx context.Context, path m.Path) ([]m.FileResult, error)
}

type reportFile struct {
	Version int            `yaml:"version"`
	Files   []m.FileResult `yaml:"files"`
}

type reportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore that writes YAML documents through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &reportStore{fs: fs}
}

func (rs *reportStore) SaveReports(ctx context.Context, path m.Path, results []m.FileResult) error {
	data, err := yaml.Marshal(reportFile{Version: reportVersion, Files: results})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := rs.fs.WriteFile(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func (rs *reportStore) LoadReports(ctx context.Context, path m.Path) ([]m.FileResult, error) {
	data, err := rs.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var report reportFile
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	if report.Version != reportVersion {
		return nil, fmt.Errorf("report %s: unsupported version %d", path, report.Version)
	}

	return report.Files, nil
}
