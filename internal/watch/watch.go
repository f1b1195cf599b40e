// Package watch provides the debounced filesystem watcher behind the
// ltnet watch command. It watches directory trees for schematic changes
// and batches rapid event bursts into a single callback.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// DefaultPattern matches LTspice schematic files.
const DefaultPattern = "*.asc"

// Watcher reports matching file changes under one or more directory
// trees. Events are debounced: a burst of writes produces one OnChange
// call with the distinct paths involved.
type Watcher struct {
	fs         *fsnotify.Watcher
	debounce   time.Duration
	patterns   []glob.Glob
	onChange   func([]string)
	callbackMu sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
}

// New builds a watcher that invokes onChange with the changed paths.
// Patterns are matched against file base names; with none given,
// DefaultPattern applies.
func New(debounce time.Duration, patterns []string, onChange func([]string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}

	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch: bad pattern %q: %w", pattern, err)
		}
		w.patterns = append(w.patterns, g)
	}

	return w, nil
}

// Watch registers the directory trees and starts event delivery. Every
// path must be a directory; files are selected by pattern, not named
// directly.
func (w *Watcher) Watch(dirs []string) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("watch: %s is not a directory", dir)
		}
		if err := w.watchTree(dir); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) watchTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if hidden(path) && path != root {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !hidden(event.Name) {
						if err := w.watchTree(event.Name); err != nil {
							slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
						} else {
							w.scheduleTree(event.Name)
						}
					}
					continue
				}
			}

			if !w.match(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) match(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.patterns {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// scheduleTree queues matching files that already exist under a freshly
// created directory, which fsnotify never reports individually.
func (w *Watcher) scheduleTree(root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if w.match(path) {
			w.schedule(path)
		}
		return nil
	})
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

// Close stops event delivery. A pending debounce timer is cancelled, so
// changes seen in the final debounce window are dropped.
func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fs.Close()
}

func hidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
