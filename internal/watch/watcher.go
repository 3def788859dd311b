// Package watch re-runs a callback when Markdown files in the content store
// change.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

// Config selects the directories to watch.
type Config struct {
	// Root is the content store root. Locale directories directly below it
	// are watched as well, including ones created while running.
	Root    string
	Pattern string
	// Debounce collapses bursts of events into one callback.
	Debounce time.Duration
}

// Watcher reports content changes under Root.
type Watcher struct {
	cfg    Config
	logger interfaces.Logger
	fsw    *fsnotify.Watcher
}

// New creates a watcher over cfg.Root and its immediate sub-directories.
func New(cfg Config, logger interfaces.Logger) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("watch: root is required")
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.md"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{cfg: cfg, logger: logger, fsw: fsw}

	if err := fsw.Add(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	entries, err := os.ReadDir(cfg.Root)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.add(filepath.Join(cfg.Root, entry.Name()))
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange once per debounced burst
// of relevant events. Callback errors are logged and do not stop the loop.
// The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && w.isLocaleDir(event.Name) {
				w.add(event.Name)
			}
			if !Relevant(event, w.cfg.Pattern) {
				continue
			}
			w.logger.Debug("watch.event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				w.logger.Error("watch.callback.failed", "error", err)
			}
		}
	}
}

func (w *Watcher) add(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("watch.add.failed", "path", dir, "error", err)
		return
	}
	w.logger.Debug("watch.add", "path", dir)
}

func (w *Watcher) isLocaleDir(name string) bool {
	if filepath.Dir(name) != filepath.Clean(w.cfg.Root) {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

// Relevant reports whether event changes a file matching pattern.
// Permission-only changes are ignored.
func Relevant(event fsnotify.Event, pattern string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	match, err := filepath.Match(pattern, filepath.Base(event.Name))
	return err == nil && match
}
