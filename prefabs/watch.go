package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/locomotion"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed spec and script files. Events and Errors are
// closed once the watcher stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
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

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
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

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tengo"
}

// ReloadTuning turns change notifications for the tuning file into configs.
// Invalid files are logged and skipped. It returns, closing out, when events
// is closed.
func ReloadTuning(events <-chan string, path string, out chan<- locomotion.Config, log logrus.FieldLogger) {
	defer close(out)
	base := filepath.Base(path)
	for name := range events {
		if filepath.Base(name) != base {
			continue
		}
		spec, err := LoadSpecFile[LocomotionSpec](name)
		if err != nil {
			if log != nil {
				log.WithError(err).Warn("prefabs: reload tuning")
			}
			continue
		}
		cfg, err := spec.ToConfig()
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("file", name).Warn("prefabs: rejected tuning")
			}
			continue
		}
		if log != nil {
			log.WithField("file", name).Info("prefabs: tuning reloaded")
		}
		out <- cfg
	}
}
