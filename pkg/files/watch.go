package files

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pluqqy/calqqy/pkg/models"
)

// SettingsEvent carries the settings re-read after the file changed on disk
type SettingsEvent struct {
	Settings *models.Settings
	Err      error
}

// SettingsWatcher reports changes to a settings file made by other processes
type SettingsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan SettingsEvent
	done    chan struct{}
}

// WatchSettings starts watching the settings file at path. The parent
// directory is watched so that files replaced by rename are picked up.
func WatchSettings(path string) (*SettingsWatcher, error) {
	dir := filepath.Dir(path)
	if err := InitConfigDir(dir); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &SettingsWatcher{
		path:    filepath.Clean(path),
		watcher: watcher,
		events:  make(chan SettingsEvent, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers one event per observed change. It is closed by Close.
func (w *SettingsWatcher) Events() <-chan SettingsEvent {
	return w.events
}

// Close stops the watcher
func (w *SettingsWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *SettingsWatcher) loop() {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settings, err := ReadSettingsFrom(w.path)
			w.send(SettingsEvent{Settings: settings, Err: err})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(SettingsEvent{Err: err})
		}
	}
}

// send replaces an undelivered event with the newer one
func (w *SettingsWatcher) send(ev SettingsEvent) {
	select {
	case w.events <- ev:
	default:
		select {
		case <-w.events:
		default:
		}
		select {
		case w.events <- ev:
		default:
		}
	}
}
