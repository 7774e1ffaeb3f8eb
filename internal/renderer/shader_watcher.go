package renderer

import (
	"fmt"

	"Seascape/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ShaderWatcher reports edited shader override files by program name. It
// runs its own goroutine and never touches the GL context; the render thread
// drains Changes through ShaderLibrary.ApplyChanges.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

func WatchShaders(dir string) (*ShaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &ShaderWatcher{
		watcher: watcher,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *ShaderWatcher) run() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, ok := shaderNameForPath(event.Name)
			if !ok {
				continue
			}
			select {
			case w.changes <- name:
			default:
				logger.Log.Debug("Shader change dropped", zap.String("shader", name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

func (w *ShaderWatcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching and waits for the goroutine to exit.
func (w *ShaderWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
