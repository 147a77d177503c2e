package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/strokefix/internal/model"
)

func TestReportStore_RoundTrip(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))

	results := []m.FileResult{
		{
			Source:   m.Source{Origin: "/repo/app/page.tsx", Root: "/repo", Hash: "00000000000000ff"},
			Symbols:  []string{"Trash", "Edit"},
			Inserted: map[string]int{"Trash": 2},
			Present:  1,
			Written:  true,
		},
		{
			Source: m.Source{Origin: "/repo/app/broken.tsx", Root: "/repo"},
			Error:  "permission denied",
		},
	}

	require.NoError(t, store.SaveReports(ctx, path, results))

	loaded, err := store.LoadReports(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, results, loaded)
}

func TestReportStore_LoadRejectsUnknownVersion(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	path := filepath.Join(t.TempDir(), "report.yaml")
	writeTestFile(t, path, "version: 9\nfiles: []\n")

	_, err := store.LoadReports(context.Background(), m.Path(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version 9")
}

func TestReportStore_LoadMissingFile(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())

	_, err := store.LoadReports(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}
