package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Directories never scanned or watched.
var ignoreDirs = map[string]bool{
	".git":         true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

const debounceInterval = 50 * time.Millisecond

func shouldIgnoreDir(name string) bool {
	return ignoreDirs[name] || (len(name) > 1 && strings.HasPrefix(name, "."))
}

func shouldIgnorePath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return true
	}
	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts[:len(parts)-1] {
		if shouldIgnoreDir(part) {
			return true
		}
	}
	return false
}

// FileWatcher keeps a Codebase in sync with the files on disk.
type FileWatcher struct {
	codebase *Codebase
	fw       *fsnotify.Watcher
	onChange func(path string, f *FileInfo)
	done     chan struct{}

	mu      sync.Mutex
	stopped bool
	// pending holds the debounce timer of each path with unhandled events.
	pending map[string]*time.Timer
}

// NewFileWatcher creates a watcher for the root directory of c. onChange,
// when not nil, is called after a file was reparsed; a nil FileInfo means
// the file at that path was removed.
func NewFileWatcher(c *Codebase, onChange func(path string, f *FileInfo)) (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		codebase: c,
		fw:       fw,
		onChange: onChange,
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Start adds every directory below the root to the watch list and starts
// handling events in the background.
func (w *FileWatcher) Start() error {
	root := w.codebase.RootDir()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreDir(info.Name()) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
	if err != nil {
		return err
	}
	go w.run()
	return nil
}

func (w *FileWatcher) run() {
	root := w.codebase.RootDir()
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name
			if event.Op == fsnotify.Chmod {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !shouldIgnoreDir(info.Name()) {
						if err := w.fw.Add(path); err != nil {
							log.Warningf("watch %s: %s", path, err)
						}
					}
					continue
				}
			}
			if shouldIgnorePath(root, path) || !w.codebase.Tracks(path) {
				continue
			}

			w.schedule(path, event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warningf("watch: %s", err)

		case <-w.done:
			w.mu.Lock()
			for path, t := range w.pending {
				t.Stop()
				delete(w.pending, path)
			}
			w.mu.Unlock()
			return
		}
	}
}

// schedule handles event once no further event arrived for path within the
// debounce interval. Editors often write a file several times per save.
func (w *FileWatcher) schedule(path string, event fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(debounceInterval, func() {
		w.mu.Lock()
		if w.pending[path] != t {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.mu.Unlock()
		w.handle(path, event)
	})
	w.pending[path] = t
}

// pendingCount returns the number of paths waiting to be handled.
func (w *FileWatcher) pendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *FileWatcher) handle(path string, event fsnotify.Event) {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, err := os.Stat(path); err != nil {
			log.Debugf("removed %s", path)
			w.codebase.RemoveFile(path)
			if w.onChange != nil {
				w.onChange(w.codebase.abs(path), nil)
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if err := w.codebase.ScanFile(path); err != nil {
		log.Warningf("scan %s: %s", path, err)
		return
	}
	log.Debugf("rescanned %s", path)
	if w.onChange != nil {
		w.onChange(w.codebase.abs(path), w.codebase.GetFile(path))
	}
}

// Stop ends watching. It is safe to call more than once.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
