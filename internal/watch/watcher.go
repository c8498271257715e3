// Package watch re-runs a render when its inputs change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/util/sets"
)

// DefaultQuietWindow is how long the inputs must stay unchanged before a
// rebuild starts.
const DefaultQuietWindow = 500 * time.Millisecond

// ChangeFunc handles one debounced batch of changed files.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher monitors a set of files and reports changes in debounced batches.
// Directories are watched rather than the files themselves so editors that
// replace files on save are seen.
type Watcher struct {
	files    sets.Set[string]
	dirs     []string
	quiet    time.Duration
	onChange ChangeFunc
	log      *slog.Logger
	ready    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithQuietWindow sets the debounce window.
func WithQuietWindow(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.quiet = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns a watcher for paths. Empty paths are ignored.
func New(paths []string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.ValidationError("change handler is required").Build()
	}
	w := &Watcher{
		files:    sets.New[string](),
		quiet:    DefaultQuietWindow,
		onChange: onChange,
		log:      slog.Default(),
		ready:    make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	dirs := sets.New[string]()
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watched path").
				WithContext("path", p).
				Build()
		}
		w.files.Insert(abs)
		if dirs.Insert(filepath.Dir(abs)) {
			w.dirs = append(w.dirs, filepath.Dir(abs))
		}
	}
	if len(w.dirs) == 0 {
		return nil, errors.ValidationError("nothing to watch").Build()
	}
	return w, nil
}

// Ready is closed once Run watches every directory.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			w.log.Error("Error closing file watcher", logfields.Error(cerr))
		}
	}()
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", dir).
				Build()
		}
	}
	w.log.Info("Watching for changes", logfields.Count(w.files.Len()))
	close(w.ready)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = sets.New[string]()
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("Input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			pending.Insert(filepath.Clean(event.Name))
			stop()
			timer = time.NewTimer(w.quiet)
			fire = timer.C
		case <-fire:
			fire = nil
			changed := sets.Sorted(pending)
			pending = sets.New[string]()
			if err := w.onChange(ctx, changed); err != nil {
				w.log.Error("Rebuild failed", logfields.Error(err))
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files.Has(filepath.Clean(event.Name)) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
