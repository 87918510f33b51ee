package coord

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the create+write pair produced by one marker touch.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to the sync marker made by other instances.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	fs     *fsnotify.Watcher
	events chan struct{}
}

// NewWatcher watches the directory holding syncPath. The directory is
// created when missing so the watch can be installed before any instance
// has written the marker.
func NewWatcher(syncPath string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(syncPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		path:     filepath.Clean(syncPath),
		debounce: debounce,
		logger:   logger,
		fs:       fw,
		events:   make(chan struct{}, 1),
	}, nil
}

// Events delivers one value per debounced burst of marker changes. It is
// closed when Run returns.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Run pumps filesystem events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.fs.Close()

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

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("sync marker watch error", zap.Error(err))
		}
	}
}
