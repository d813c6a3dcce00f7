package repl

import (
	"path/filepath"

	"github.com/dpcl-lang/dpcl/logs"
	"github.com/fsnotify/fsnotify"
)

// watchFile signals on changed when filePath is written. The parent
// directory is watched instead of the file itself, since editors tend to
// replace files on save. Signals coalesce while nobody is listening.
func watchFile(filePath string, changed chan<- struct{}, logger logs.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	filePath = filepath.Clean(filePath)
	go func() {
		for {
			select {

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filePath {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watch error", "err", err)
			}
		}
	}()

	return watcher, nil
}
