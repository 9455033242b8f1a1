package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/swl/errors"
)

// LinkFunc performs one link and returns the files it read. The files are
// used even when err is set, so fixing a broken input triggers a relink.
type LinkFunc func(ctx context.Context) (files []string, err error)

// Options configure a Watcher.
type Options struct {
	// Debounce is the quiet period before relinking.
	Debounce time.Duration
	Logger   *zap.Logger
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		Debounce: 100 * time.Millisecond,
		Logger:   zap.NewNop(),
	}
}

// Watcher relinks when an input file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce *Debouncer
	opts     Options

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
	links int
}

// New creates a watcher.
func New(opts Options) (*Watcher, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindIO, err, "create file watcher")
	}
	return &Watcher{
		watcher:  fw,
		log:      opts.Logger,
		debounce: NewDebouncer(opts.Debounce),
		opts:     opts,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// NewWithDefaults creates a watcher with DefaultOptions.
func NewWithDefaults() (*Watcher, error) {
	return New(DefaultOptions())
}

// Run links once, then relinks after every debounced change to the files
// of the previous link, until ctx is done. Link errors are logged and do
// not stop the loop.
func (w *Watcher) Run(ctx context.Context, link LinkFunc) error {
	w.relink(ctx, link)

	trigger := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			w.debounce.Stop()
			return nil

		case <-trigger:
			w.relink(ctx, link)

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return errors.New(errors.PhaseLoad, errors.KindIO).Detail("watcher event channel closed").Build()
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("input changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			w.debounce.Trigger(func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New(errors.PhaseLoad, errors.KindIO).Detail("watcher error channel closed").Build()
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Close releases the underlying watcher. Run must have returned.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindIO, err, "close file watcher")
	}
	return nil
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Links returns how many links have run.
func (w *Watcher) Links() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.links
}

func (w *Watcher) relink(ctx context.Context, link LinkFunc) {
	start := time.Now()
	files, err := link(ctx)

	w.mu.Lock()
	w.links++
	w.mu.Unlock()

	if err != nil {
		w.log.Error("link failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
	} else {
		w.log.Info("linked", zap.Int("files", len(files)), zap.Duration("duration", time.Since(start)))
	}
	if len(files) > 0 {
		w.update(files)
	}
}

// update replaces the watched file set and adjusts the directory watches.
func (w *Watcher) update(files []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		f = filepath.Clean(f)
		w.files[f] = true
		dirs[filepath.Dir(f)] = true
	}

	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.log.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
			delete(dirs, dir)
			continue
		}
		w.log.Debug("watching directory", zap.String("dir", dir))
	}
	for dir := range w.dirs {
		if !dirs[dir] {
			_ = w.watcher.Remove(dir)
		}
	}
	w.dirs = dirs
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(ev.Name)]
}
