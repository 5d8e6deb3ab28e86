package codebase

import (
	"os"
	"time"
)

// FileWatcher polls the project's files and reparses those whose
// modification time changed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, f *FileInfo)
}

type WatcherOption func(*FileWatcher)

func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *FileWatcher) {
		w.pollInterval = d
	}
}

// WithOnChange registers a callback run after a file was reparsed. f is nil
// when the file was removed.
func WithOnChange(fn func(path string, f *FileInfo)) WatcherOption {
	return func(w *FileWatcher) {
		w.onChange = fn
	}
}

func NewFileWatcher(c *Codebase, opts ...WatcherOption) *FileWatcher {
	w := &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	paths, err := w.codebase.Project().Files()
	if err != nil {
		log.Errorf("watch %s: %s", w.codebase.RootDir(), err)
		return
	}

	currentFiles := make(map[string]bool, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		f, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Errorf("rescan %s: %s", path, err)
			continue
		}
		if w.onChange != nil {
			w.onChange(path, f)
		}
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			if w.onChange != nil {
				w.onChange(path, nil)
			}
		}
	}
}
