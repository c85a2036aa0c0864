package app

import (
	"context"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
)

// merge appends the content of every later map to the first and writes the
// result to -o. Ids are not renumbered.
func (a *App) merge(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	base, err := loadMap(ctx, a.config.Files[0])
	if err != nil {
		return err
	}
	for _, path := range a.config.Files[1:] {
		m, err := loadMap(ctx, path)
		if err != nil {
			return err
		}
		base.Merge(m)
		logger.Debug("Map merged.", "path", path, "entities", len(base.Entities))
	}

	if err := a.writeTo(ctx, a.config.Output, base); err != nil {
		return err
	}
	logger.Info("Maps merged.", "count", len(a.config.Files), "output", a.config.Output)
	return nil
}
