// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

type (
	// OnChangeFunc receives the changed paths, relative to the base directory.
	OnChangeFunc func(ctx context.Context, changed []string) error

	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the watched directory. Empty means the working directory.
		BaseDir string
		// Recursive also watches every non-ignored subdirectory, including
		// ones created after startup.
		Recursive bool
		// Patterns select which paths trigger the callback. Empty matches all.
		Patterns []string
		// Ignore is merged with DefaultIgnores.
		Ignore []string
		// Debounce is the quiet period before the callback fires.
		Debounce time.Duration
		// ClearScreen writes an ANSI clear sequence to Stdout before each run.
		ClearScreen bool
		// OnChange is invoked with the deduplicated, sorted changed paths.
		// Errors are logged and do not stop the watcher.
		OnChange OnChangeFunc
		// Stdout receives the clear-screen sequence. nil means os.Stdout.
		Stdout io.Writer
		// Logger reports skipped runs and callback errors. nil means log.Default().
		Logger *log.Logger
	}

	// Watcher monitors paths and fires a debounced callback. Run must be
	// called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		filter   filter
		baseDir  string
		debounce time.Duration
		stdout   io.Writer
		logger   *log.Logger
		started  atomic.Bool
	}
)

// FileConfig watches a single file: its directory, non-recursively, with a
// pattern matching only the file name.
func FileConfig(path string, onChange OnChangeFunc) Config {
	return Config{
		BaseDir:  filepath.Dir(path),
		Patterns: []string{escapeMeta(filepath.Base(path))},
		OnChange: onChange,
	}
}

// New validates cfg and registers the directories to watch.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	f, err := newFilter(cfg.Patterns, cfg.Ignore)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		filter:   f,
		baseDir:  absBase,
		debounce: cfg.Debounce,
		stdout:   cfg.Stdout,
		logger:   cfg.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	w.logger = w.logger.WithPrefix("watch")

	if err := w.addDirectories(); err != nil {
		_ = fsw.Close() // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// BaseDir returns the absolute watched directory.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run processes events until ctx is canceled. It returns nil on cancellation
// and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	d := &debouncer{
		delay:   w.debounce,
		pending: make(map[string]struct{}),
	}
	d.fire = func(changed []string) { w.dispatch(ctx, changed) }
	d.ctx = ctx

	defer func() {
		d.stop()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			w.handle(evt, d)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

func (w *Watcher) handle(evt fsnotify.Event, d *debouncer) {
	rel, err := filepath.Rel(w.baseDir, evt.Name)
	if err != nil {
		rel = evt.Name
	}
	if w.filter.ignored(rel) {
		return
	}
	if w.cfg.Recursive && evt.Has(fsnotify.Create) {
		w.maybeAddDir(evt.Name)
	}
	if !w.filter.matches(rel) {
		return
	}
	d.add(rel)
}

func (w *Watcher) dispatch(ctx context.Context, changed []string) {
	if w.cfg.OnChange == nil {
		return
	}
	if w.cfg.ClearScreen {
		_, _ = io.WriteString(w.stdout, clearScreen)
	}
	w.logger.Debug("change detected", "paths", changed)
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		w.logger.Error("re-run failed", "err", err)
	}
}

// addDirectories registers BaseDir, and its subtree in recursive mode.
func (w *Watcher) addDirectories() error {
	if !w.cfg.Recursive {
		if err := w.fsw.Add(w.baseDir); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", w.baseDir, err)
		}
		return nil
	}

	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkErr)
			return nil //nolint:nilerr // inaccessible subtrees are not watched
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.baseDir, path)
		if err != nil {
			return nil //nolint:nilerr // unreachable for paths under baseDir
		}
		if rel != "." && w.filter.ignoredDir(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

// maybeAddDir extends a recursive watch to a directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.filter.ignoredDir(rel) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("add new directory", "path", path, "err", err)
	}
}

// debouncer coalesces paths and fires once the delay passes without new ones.
// A fire that overlaps a running callback is postponed, never dropped.
type debouncer struct {
	ctx     context.Context //nolint:containedctx // scoped to a single Run
	delay   time.Duration
	fire    func(changed []string)
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	running atomic.Bool
}

func (d *debouncer) add(rel string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[rel] = struct{}{}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flush)
	} else {
		d.timer.Reset(d.delay)
	}
}

func (d *debouncer) flush() {
	if d.ctx.Err() != nil {
		return
	}
	if !d.running.CompareAndSwap(false, true) {
		d.mu.Lock()
		if d.timer != nil {
			d.timer.Reset(d.delay)
		}
		d.mu.Unlock()
		return
	}
	defer d.running.Store(false)

	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	changed := slices.Sorted(maps.Keys(d.pending))
	clear(d.pending)
	d.mu.Unlock()

	d.fire(changed)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
