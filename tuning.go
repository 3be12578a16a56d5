package folio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// TuningWatcher reloads a tuning file whenever it changes on disk. Reloads
// happen on the watcher goroutine; the parsed values are only copied into the
// live Config when Apply is called, which the engine does at the start of
// each Update, so the render loop stays the only writer.
type TuningWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu      sync.Mutex
	pending *Config
	reloads int

	done chan struct{}
}

// WatchTuning starts watching path. The directory is watched rather than the
// file itself so that editors which replace the file on save are still seen.
func WatchTuning(path string, logger *slog.Logger) (*TuningWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("tuning: create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("tuning: resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("tuning: watch %s: %w", path, err)
	}

	tw := &TuningWatcher{
		path:    abs,
		watcher: w,
		logger:  logger.With("tuning", path),
		done:    make(chan struct{}),
	}
	go tw.loop()
	return tw, nil
}

func (tw *TuningWatcher) loop() {
	defer close(tw.done)
	for {
		select {
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != tw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			tw.reload()
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			tw.logger.Error("tuning watcher error", "err", err)
		}
	}
}

// reload parses the file and stores the result for the next Apply. A file
// that fails to parse or validate is logged and ignored; the engine keeps
// running on the last good values.
func (tw *TuningWatcher) reload() {
	data, err := os.ReadFile(tw.path)
	if err != nil {
		tw.logger.Warn("tuning reload failed", "err", err)
		return
	}
	cfg := DefaultConfig()
	if err := decodeConfig(tw.path, data, cfg); err != nil {
		tw.logger.Warn("tuning reload failed", "err", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		tw.logger.Warn("tuning rejected", "err", err)
		return
	}
	tw.mu.Lock()
	tw.pending = cfg
	tw.mu.Unlock()
}

// Apply copies the most recently reloaded values into dst. It reports
// whether anything was applied.
func (tw *TuningWatcher) Apply(dst *Config) bool {
	tw.mu.Lock()
	cfg := tw.pending
	tw.pending = nil
	if cfg != nil {
		tw.reloads++
	}
	tw.mu.Unlock()
	if cfg == nil {
		return false
	}
	*dst = *cfg
	tw.logger.Info("tuning applied")
	return true
}

// Reloads returns how many reloads have been applied so far.
func (tw *TuningWatcher) Reloads() int {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.reloads
}

// Close stops watching and waits for the watcher goroutine to exit.
func (tw *TuningWatcher) Close() error {
	err := tw.watcher.Close()
	<-tw.done
	return err
}
