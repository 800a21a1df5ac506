package recognize

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes a locale-override directory until ctx is cancelled and
// invokes onChange after YAML files are created, written, removed, or
// renamed. Events are debounced so that an editor's write burst triggers
// a single reload. onChange runs on the watcher goroutine; callers that
// rebuild a Recognizer inside it must make the swap safe themselves.
func Watch(ctx context.Context, dir string, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("override watcher: started", slog.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("override watcher: stopped")
			return nil

		case <-reloadCh:
			logger.Debug("override watcher: reloading dictionaries")
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".yaml") && !strings.HasSuffix(ev.Name, ".yml") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("override watcher: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("override watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
