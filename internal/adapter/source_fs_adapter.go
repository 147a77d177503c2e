// Package adapter contains the storage adapters strokefix uses to reach the
// project trees it rewrites.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"

	m "github.com/mouse-blink/strokefix/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning and rewriting projects. It hides direct storage access
// so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Exists reports whether path can be reached.
	Exists(ctx context.Context, path m.Path) (bool, error)

	// Walk recursively visits every file under root. Directories whose name is
	// listed in skipDirs are pruned together with their whole subtree.
	Walk(ctx context.Context, root m.Path, skipDirs []string, fn WalkFunc) error

	// ReadFile loads a file and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the contents of path.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// Gitignore compiles root/.gitignore. It returns nil when there is none.
	Gitignore(root m.Path) (Matcher, error)
}

// WalkFunc is called for each file found by Walk. err is set, and info is nil,
// when the directory at path could not be listed. Returning an error stops the
// walk.
type WalkFunc func(path m.Path, info os.FileInfo, err error) error

// Matcher reports whether a root relative path is ignored.
type Matcher interface {
	MatchesPath(path string) bool
}

// LocalSourceFSAdapter implements SourceFSAdapter on top of afs, which treats
// plain paths as file:// URLs.
type LocalSourceFSAdapter struct {
	fs afs.Service
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{fs: afs.New()}
}

// Exists reports whether path is present.
func (a *LocalSourceFSAdapter) Exists(ctx context.Context, path m.Path) (bool, error) {
	return a.fs.Exists(ctx, string(path))
}

// Walk iterates over files under root in depth-first order, skipping
// denylisted directories. Entries are listed, never opened. A symlink to a file
// is reported with the target's info; a symlink to a directory is not
// followed. A directory that cannot be listed is passed to fn with its error;
// when fn returns nil the walk continues with the next entry.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, skipDirs []string, fn WalkFunc) error {
	skip := make(map[string]struct{}, len(skipDirs))
	for _, name := range skipDirs {
		skip[name] = struct{}{}
	}

	match := option.Match(func(_ string, info os.FileInfo) bool {
		if !info.IsDir() {
			return true
		}

		_, skipped := skip[info.Name()]

		return !skipped
	})

	return a.walk(ctx, url.Normalize(string(root), file.Scheme), match, fn)
}

func (a *LocalSourceFSAdapter) walk(ctx context.Context, dirURL string, match option.Match, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	objects, err := a.fs.List(ctx, dirURL, match)
	if err != nil {
		return fn(m.Path(url.Path(dirURL)), nil, fmt.Errorf("list: %w", err))
	}

	for _, object := range objects {
		if object.IsDir() {
			if url.Equals(dirURL, object.URL()) {
				continue
			}

			if err := a.walk(ctx, object.URL(), match, fn); err != nil {
				return err
			}

			continue
		}

		path := url.Path(object.URL())

		var info os.FileInfo = object

		if object.Mode()&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			switch {
			case err != nil:
				// dangling: reading it reports the failure
			case target.IsDir():
				continue
			default:
				info = target
			}
		}

		if err := fn(m.Path(path), info, nil); err != nil {
			return err
		}
	}

	return nil
}

// ReadFile loads file contents.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	return a.fs.DownloadWithURL(ctx, string(path))
}

// WriteFile truncates and rewrites an existing file in place, following
// symlinks and keeping its inode and mode. A missing file is created with perm.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	exists, err := a.fs.Exists(ctx, string(path))
	if err != nil {
		return err
	}

	if !exists {
		return a.fs.Upload(ctx, string(path), perm, bytes.NewReader(content))
	}

	writer, err := a.fs.NewWriter(ctx, string(path), perm, option.OsFlag(os.O_TRUNC), &option.Empty{Allowed: true})
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		_ = writer.Close()
		return err
	}

	return writer.Close()
}

// Gitignore compiles the .gitignore file at the top of root, if any.
func (a *LocalSourceFSAdapter) Gitignore(root m.Path) (Matcher, error) {
	path := filepath.Join(string(root), ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	return gi, nil
}

// NormalizeRootPath expands a leading ~, drops a trailing /... and returns an
// absolute path.
func NormalizeRootPath(root string) (m.Path, error) {
	rootStr := strings.TrimSuffix(root, "/...")

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}
