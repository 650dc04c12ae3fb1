// Package watch re-runs a trigger when any of a set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/logger"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a generator run produces.
const DefaultDebounce = 500 * time.Millisecond

// Trigger is called once per debounced burst of changes.
type Trigger func() error

// Watcher watches the parent directories of its files, so files that are
// replaced by rename are still seen, and ignores events for anything else.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	trigger  Trigger
	log      *zap.SugaredLogger
	ready    chan struct{}
}

// New creates a watcher for paths. A non-positive debounce uses
// DefaultDebounce and a nil log uses the global component logger.
func New(paths []string, debounce time.Duration, trigger Trigger, log *zap.SugaredLogger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if trigger == nil {
		return nil, errors.New("watch trigger is nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.ComponentLogger("watch")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		trigger:  trigger,
		log:      log,
		ready:    make(chan struct{}),
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve %s", p)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		w.dirs = append(w.dirs, d)
	}
	sort.Strings(w.dirs)
	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Ready is closed once every directory is being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is cancelled. The trigger runs on this goroutine,
// so runs never overlap; events arriving during a run start the next
// debounce window. Trigger errors are logged and watching continues.
// A Watcher runs at most once.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	for _, d := range w.dirs {
		if err := fw.Add(d); err != nil {
			return errors.Wrapf(err, "failed to watch %s", d)
		}
	}
	close(w.ready)
	w.log.Infow("watching for changes", logger.FieldCount, len(w.files), "dirs", w.dirs)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

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
			w.log.Debugw("change detected", logger.FieldFile, event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.run()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}

func (w *Watcher) run() {
	started := time.Now()
	if err := w.trigger(); err != nil {
		w.log.Errorw("triggered run failed", logger.FieldError, errors.Report(err))
		return
	}
	w.log.Debugw("triggered run complete", logger.FieldDurationMS, time.Since(started).Milliseconds())
}
