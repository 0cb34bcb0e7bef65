package liquid

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reports writes to one config file. It watches the file's
// directory so that editors which replace the file on save are still seen.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher starts watching path.
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// settleDelay is how long the file must stay quiet before a change is
// reported. A burst of writes yields one event after the last write.
const settleDelay = 100 * time.Millisecond

func (w *ConfigWatcher) run() {
	defer close(w.done)
	timer := time.NewTimer(settleDelay)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(settleDelay)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
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

// Watch reloads tunables from path whenever it changes. Reloads are applied
// on the next Update, on the game goroutine.
func (s *Stage) Watch(path string) error {
	w, err := NewConfigWatcher(path)
	if err != nil {
		return err
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.watcher = w
	s.configPath = path
	return nil
}

// pollConfig drains pending watcher events without blocking and re-applies
// the config once if anything changed.
func (s *Stage) pollConfig() {
	if s.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case <-s.watcher.Events:
			changed = true
			continue
		case err := <-s.watcher.Errors:
			Logger.Printf("watch %s: %v", s.configPath, err)
			continue
		default:
		}
		break
	}
	if !changed {
		return
	}
	cfg, err := LoadConfig(s.configPath)
	if err != nil {
		Logger.Printf("reload: %v", err)
		return
	}
	if err := s.ApplyConfig(cfg); err != nil {
		Logger.Printf("reload: %v", err)
		return
	}
	Logger.Printf("reloaded %s", s.configPath)
}
