package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vmfgo/internal/dump"
)

// dump prints a document, or the block at -path, as YAML.
func (a *App) dump(ctx context.Context) error {
	path := a.config.Files[0]
	doc, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}

	if a.config.Path == "" {
		return dump.Encode(a.outW, doc)
	}
	block, err := doc.Lookup(a.config.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return dump.EncodeBlock(a.outW, block)
}
