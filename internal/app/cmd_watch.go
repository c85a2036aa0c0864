package app

import (
	"context"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/watch"
)

// watch checks every map file written in the watched directories until ctx
// is cancelled.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	w, err := watch.New(a.config.Files...)
	if err != nil {
		return err
	}
	defer w.Close()
	logger.Info("Watching for map changes.", "dirs", a.config.Files)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch stopped.")
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			r := checkFile(ctx, path)
			r.write(a.outW)
			logger.Debug("Map changed.", "path", path, "failed", r.failed())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)
		}
	}
}
