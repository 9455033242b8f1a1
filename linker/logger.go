package linker

import (
	"sync"

	"go.uber.org/zap"
)

var (
	pkgLog     *zap.Logger
	pkgLogOnce sync.Once
)

// Logger returns the logger used by linkers created without
// Options.Logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	pkgLogOnce.Do(func() {
		if pkgLog == nil {
			pkgLog = zap.NewNop()
		}
	})
	return pkgLog
}

// SetLogger installs l, scoped under the "linker" name, for linkers created
// afterwards. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		pkgLog = zap.NewNop()
		return
	}
	pkgLog = l.Named("linker")
}
