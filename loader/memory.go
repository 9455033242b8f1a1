package loader

import (
	"github.com/wippyai/swl/errors"
)

// MemoryLoader serves files from a map. Paths are used verbatim as their
// canonical identity.
type MemoryLoader struct {
	Files map[string][]byte
}

// NewMemoryLoader creates a loader over text files.
func NewMemoryLoader(files map[string]string) *MemoryLoader {
	m := &MemoryLoader{Files: make(map[string][]byte, len(files))}
	for name, content := range files {
		m.Files[name] = []byte(content)
	}
	return m
}

func (l *MemoryLoader) Canonicalize(path string) (string, error) {
	return path, nil
}

func (l *MemoryLoader) LoadRaw(path string) ([]byte, error) {
	data, ok := l.Files[path]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "file", path)
	}
	return data, nil
}
