package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/recipe"
)

// apply runs a recipe against one map and writes the result to -o, or to
// the output when -o is not set.
func (a *App) apply(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	loader := recipe.NewLoader()
	r, diags := loader.Load(ctx, a.config.Recipe)
	if len(diags) > 0 {
		if err := loader.WriteDiagnostics(a.errW, diags); err != nil {
			return err
		}
	}
	if diags.HasErrors() {
		return fmt.Errorf("failed to load recipe %s: %w", a.config.Recipe, diags)
	}

	path := a.config.Files[0]
	m, err := loadMap(ctx, path)
	if err != nil {
		return err
	}

	results, err := r.Apply(ctx, m)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, res := range results {
		logger.Info("Edit applied.", "edit", res.Edit, "entities", res.Matched)
	}

	return a.writeTo(ctx, a.config.Output, m)
}
