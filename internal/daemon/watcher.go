package daemon

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/glimt/internal/config"
)

// ConfigWatcher watches the config file and reloads it on change. Invalid
// files are reported and the previous configuration stays active.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *slog.Logger
	onReload func(*config.Config)
	onError  func(error)

	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewConfigWatcher creates a watcher for the given config path. onReload
// receives each successfully loaded config; onError may be nil.
func NewConfigWatcher(path string, logger *slog.Logger, onReload func(*config.Config), onError func(error)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigWatcher{
		watcher:  watcher,
		path:     path,
		logger:   logger,
		onReload: onReload,
		onError:  onError,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return nil
	}

	// Watch the directory containing the file; editors replace files, which
	// drops a watch on the file itself.
	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}

	cw.running = true
	go cw.watch()
	return nil
}

// watch is the main watch loop.
func (cw *ConfigWatcher) watch() {
	filename := filepath.Base(cw.path)

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				cw.logger.Debug("config file changed, reloading", "file", cw.path)
				cfg, err := config.LoadConfig(cw.path)
				if err != nil {
					cw.logger.Warn("config reload failed, keeping previous", "error", err)
					if cw.onError != nil {
						cw.onError(err)
					}
					continue
				}
				cw.onReload(cfg)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("config watcher error", "error", err)

		case <-cw.done:
			return
		}
	}
}

// Stop stops the watcher. Safe to call whether or not Start succeeded.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		cw.running = false
		close(cw.done)
	}
	return cw.watcher.Close()
}
