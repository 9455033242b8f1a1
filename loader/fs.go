package loader

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/wippyai/swl/errors"
)

// FileSystemLoader loads files relative to a root directory on disk.
type FileSystemLoader struct {
	Root string
}

// NewFileSystemLoader creates a loader rooted at root. An empty root means
// the working directory.
func NewFileSystemLoader(root string) *FileSystemLoader {
	return &FileSystemLoader{Root: root}
}

// Canonicalize returns the cleaned absolute path of p. Absolute paths are
// used as given.
func (l *FileSystemLoader) Canonicalize(p string) (string, error) {
	full := p
	if !filepath.IsAbs(p) {
		full = filepath.Join(l.Root, p)
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", errors.IO(p, err)
	}
	return abs, nil
}

func (l *FileSystemLoader) LoadRaw(p string) ([]byte, error) {
	canonical, err := l.Canonicalize(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Path(canonical).
				Detail("file %q not found", p).
				Cause(err).
				Build()
		}
		return nil, errors.IO(canonical, err)
	}
	return data, nil
}

// FSLoader loads files from an fs.FS, such as an embed.FS or fstest.MapFS.
type FSLoader struct {
	FS fs.FS
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{FS: fsys}
}

// Canonicalize maps p to a valid fs.FS path: slash separated, cleaned and
// without a leading "/" or "./".
func (l *FSLoader) Canonicalize(p string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
	if clean == "" {
		clean = "."
	}
	if !fs.ValidPath(clean) {
		return "", errors.New(errors.PhaseLoad, errors.KindNotFound).
			Detail("invalid path %q", p).
			Build()
	}
	return clean, nil
}

func (l *FSLoader) LoadRaw(p string) ([]byte, error) {
	canonical, err := l.Canonicalize(p)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.FS, canonical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound(errors.PhaseLoad, "file", canonical)
		}
		return nil, errors.IO(canonical, err)
	}
	return data, nil
}
