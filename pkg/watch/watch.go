// Package watch keeps a document store in sync with files on disk.
//
// Creating or writing a watched file rebuilds its fold tree; removing or
// renaming it closes the document.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/fsutil"
	"github.com/yaklabco/gofold/pkg/langdetect"
	"github.com/yaklabco/gofold/pkg/source"
	"github.com/yaklabco/gofold/pkg/store"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// eventBuffer is the capacity of the Events channel.
const eventBuffer = 64

// EventKind classifies a store update.
type EventKind int

const (
	// EventRebuilt means the document's tree was (re)built.
	EventRebuilt EventKind = iota + 1

	// EventClosed means the document was dropped from the store.
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventRebuilt:
		return "rebuilt"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event describes one store update.
type Event struct {
	Kind      EventKind
	Path      string
	Language  string
	Folds     int
	Warnings  int
	Timestamp time.Time
}

// Watcher feeds filesystem changes into a store.
type Watcher struct {
	store    *store.Store
	detector *langdetect.Detector
	watcher  *fsnotify.Watcher
	events   chan Event
	stop     chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	files map[string]bool // explicitly watched files
	dirs  map[string]bool // directories whose files are all tracked
}

// New creates a Watcher updating st. Languages are resolved with detector,
// which must share st's marker table.
func New(st *store.Store, detector *langdetect.Detector) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	return &Watcher{
		store:    st,
		detector: detector,
		watcher:  fsw,
		events:   make(chan Event, eventBuffer),
		stop:     make(chan struct{}),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Events returns the channel of store updates. Updates are dropped when
// the channel is full.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Add starts watching paths and loads their current contents.
// Directories are watched recursively, skipping hidden and vendored ones.
func (w *Watcher) Add(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			if err := w.addDir(ctx, absPath); err != nil {
				return err
			}
			continue
		}

		// Watch the parent so editors that save by rename stay tracked.
		if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.mu.Lock()
		w.files[absPath] = true
		w.mu.Unlock()

		w.load(ctx, absPath)
	}
	return nil
}

// addDir watches root and every visible subdirectory, loading each file.
func (w *Watcher) addDir(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && skipDir(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			w.mu.Lock()
			w.dirs[path] = true
			w.mu.Unlock()
			return nil
		}

		if entry.Type().IsRegular() && !hidden(path) {
			w.load(ctx, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", root, err)
	}
	return nil
}

// Run processes filesystem events until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	defer w.Stop()

	for {
		select {
		case <-w.stop:
			return nil
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// Stop stops the watcher and releases its resources. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.tracksDir(filepath.Dir(path)) && !skipDir(path) {
				if err := w.addDir(ctx, path); err != nil {
					logging.FromContext(ctx).Warn("watch new directory", logging.FieldPath, path, logging.FieldError, err)
				}
			}
			return
		}
		if w.tracked(path) {
			w.load(ctx, path)
		}
	case event.Has(fsnotify.Write):
		if w.tracked(path) {
			w.load(ctx, path)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.close(ctx, path)
	}
}

// load rebuilds the tree for path, or closes it if its language has no markers.
func (w *Watcher) load(ctx context.Context, path string) {
	logger := logging.FromContext(ctx)

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		logger.Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}

	lang := w.detector.Detect(path, content)
	if !w.detector.Supports(lang) {
		w.close(ctx, path)
		return
	}

	if !w.store.Change(path, source.New(path, content).Texts(), lang) {
		return
	}

	tree := w.store.Tree(path)
	if tree == nil {
		return
	}

	logger.Info("tree rebuilt",
		logging.FieldPath, path,
		logging.FieldLanguage, lang,
		logging.FieldFolds, tree.Len(),
		logging.FieldWarnings, len(tree.Warnings()),
	)
	w.emit(Event{
		Kind:     EventRebuilt,
		Path:     path,
		Language: lang,
		Folds:    tree.Len(),
		Warnings: len(tree.Warnings()),
	})
}

func (w *Watcher) close(ctx context.Context, path string) {
	if !w.store.Close(path) {
		return
	}
	logging.FromContext(ctx).Info("document closed", logging.FieldPath, path)
	w.emit(Event{Kind: EventClosed, Path: path})
}

func (w *Watcher) emit(event Event) {
	event.Timestamp = time.Now()
	select {
	case w.events <- event:
	default:
	}
}

func (w *Watcher) tracked(path string) bool {
	if hidden(path) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path] || w.dirs[filepath.Dir(path)]
}

func (w *Watcher) tracksDir(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirs[dir]
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func skipDir(path string) bool {
	return hidden(path) || langdetect.IsVendored(filepath.Base(path)+"/")
}
