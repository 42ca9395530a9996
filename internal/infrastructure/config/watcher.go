package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads physics.json whenever it changes on disk and delivers
// the new config on Updates. Only the latest config is kept if the
// consumer falls behind.
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	Updates chan *PhysicsConfig
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the loader's base directory.
func NewWatcher(loader *Loader) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(loader.BasePath()); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", loader.BasePath(), err)
	}

	watcher := &Watcher{
		loader:  loader,
		watcher: w,
		Updates: make(chan *PhysicsConfig, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Updates is closed once the loop exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Updates)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != physicsFile {
				continue
			}

			// Editors often truncate before writing; a parse failure here is
			// followed by another event once the file is complete.
			cfg, err := w.loader.LoadPhysics()
			if err != nil {
				log.Printf("config: reload skipped: %v", err)
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config: watcher error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) publish(cfg *PhysicsConfig) {
	select {
	case w.Updates <- cfg:
		return
	default:
	}
	// Replace the stale pending config.
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	default:
	}
}
