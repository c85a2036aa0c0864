package app

import (
	"context"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
)

// format prints each document in canonical layout, or rewrites it in place
// with -w. The typed model is bypassed so nothing but layout changes.
func (a *App) format(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, path := range a.config.Files {
		doc, err := loadDocument(ctx, path)
		if err != nil {
			return err
		}

		dest := ""
		if a.config.Write {
			dest = path
		}
		if err := a.writeTo(ctx, dest, doc); err != nil {
			return err
		}
		if a.config.Write {
			logger.Info("File formatted.", "path", path)
		}
	}
	return nil
}
