package scripting

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce is how long the tree must be quiet before changes are reported.
const debounce = 100 * time.Millisecond

// Watcher reports changes to .lua files under a script tree. The root and
// each of its immediate subdirectories are watched.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching root.
//
// Precondition: root must be a readable directory.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := []string{root}
	entries, err := os.ReadDir(root)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is idempotent.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run forwards a changed path once its file has been quiet for the debounce
// window, so a truncate followed by a write is reported once, after the write.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	pending := make(map[string]struct{})
	quiet := time.NewTimer(debounce)
	quiet.Stop()
	defer quiet.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isScriptFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			quiet.Reset(debounce)
		case <-quiet.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)
			for _, name := range names {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".lua"
}

// Reloader reloads a Manager whenever its Watcher reports a change. It
// implements server.Service.
type Reloader struct {
	mgr     *Manager
	watcher *Watcher
	logger  *zap.Logger
}

// NewReloader watches the tree mgr last loaded.
//
// Precondition: mgr has loaded a tree; logger must be non-nil.
func NewReloader(mgr *Manager, logger *zap.Logger) (*Reloader, error) {
	w, err := NewWatcher(mgr.Root())
	if err != nil {
		return nil, err
	}
	return &Reloader{mgr: mgr, watcher: w, logger: logger}, nil
}

// Start reloads on every change until ctx is cancelled or Stop is called.
// A failed reload keeps the previous scripts and is logged.
func (r *Reloader) Start(ctx context.Context) error {
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if err := r.mgr.Reload(); err != nil {
				r.logger.Warn("script reload failed", zap.String("changed", path), zap.Error(err))
				continue
			}
			r.logger.Info("scripts reloaded", zap.String("changed", path))
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("script watcher error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop closes the watcher, which ends Start.
func (r *Reloader) Stop() {
	_ = r.watcher.Close()
}
