package eval

import (
	"sync"

	"go.uber.org/zap"
)

var (
	pkgLog     *zap.Logger
	pkgLogOnce sync.Once
)

// Logger returns the eval package's logger, a no-op logger by default.
func Logger() *zap.Logger {
	pkgLogOnce.Do(func() {
		if pkgLog == nil {
			pkgLog = zap.NewNop()
		}
	})
	return pkgLog
}

// SetLogger installs l under the "eval" name. A nil l restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		pkgLog = zap.NewNop()
		return
	}
	pkgLog = l.Named("eval")
}
