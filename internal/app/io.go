package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/fsutil"
	"github.com/specialistvlad/vmfgo/keyvalues"
	"github.com/specialistvlad/vmfgo/vmf"
)

func loadDocument(ctx context.Context, path string) (*keyvalues.Document, error) {
	r, err := fsutil.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := keyvalues.Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Document parsed.", "path", path, "blocks", len(doc.Blocks))
	return doc, nil
}

func loadMap(ctx context.Context, path string) (*vmf.Map, error) {
	doc, err := loadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	m := vmf.FromDocument(doc)
	ctxlog.FromContext(ctx).Debug("Map parsed.", "path", path, "entities", len(m.Entities))
	return m, nil
}

// writeTo writes src to path, or to the app output when path is empty.
func (a *App) writeTo(ctx context.Context, path string, src io.WriterTo) error {
	if path == "" {
		_, err := src.WriteTo(a.outW)
		return err
	}

	w, err := fsutil.Create(path)
	if err != nil {
		return err
	}
	n, err := src.WriteTo(w)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("File written.", "path", path, "bytes", n)
	return nil
}
