package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/fsutil"
	"github.com/specialistvlad/vmfgo/internal/iograph"
	"golang.org/x/sync/errgroup"
)

// ErrCheckFailed is returned when at least one checked file has problems.
var ErrCheckFailed = errors.New("check found problems")

// report is the outcome of checking one file.
type report struct {
	path     string
	err      error
	problems []string
	warnings []string
}

func (r report) failed() bool {
	return r.err != nil || len(r.problems) > 0
}

func (r report) write(w io.Writer) {
	switch {
	case r.err != nil:
		fmt.Fprintf(w, "%s: %v\n", r.path, r.err)
	case !r.failed() && len(r.warnings) == 0:
		fmt.Fprintf(w, "%s: ok\n", r.path)
	}
	for _, p := range r.problems {
		fmt.Fprintf(w, "%s: %s\n", r.path, p)
	}
	for _, p := range r.warnings {
		fmt.Fprintf(w, "%s: warning: %s\n", r.path, p)
	}
}

// check parses every file, expanding directories, and validates entity I/O.
// Files are checked concurrently; reports keep argument order.
func (a *App) check(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	paths, err := expand(a.config.Files)
	if err != nil {
		return err
	}
	logger.Debug("Check started.", "files", len(paths), "workers", a.config.Workers)

	reports := make([]report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = checkFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		r.write(a.outW)
		if r.failed() {
			failed++
		}
	}
	logger.Info("Check finished.", "files", len(paths), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(paths))
	}
	return nil
}

func checkFile(ctx context.Context, path string) report {
	r := report{path: path}
	m, err := loadMap(ctx, path)
	if err != nil {
		r.err = err
		return r
	}

	seen := make(map[int]bool)
	for _, e := range m.Entities {
		if id, ok := e.ID(); ok {
			if seen[id] {
				r.problems = append(r.problems, fmt.Sprintf("duplicate entity id %d", id))
			}
			seen[id] = true
		}
	}

	g := iograph.Build(m)
	for _, bad := range g.Malformed() {
		r.problems = append(r.problems, fmt.Sprintf("malformed connection %s %s %q", entityLabel(bad.Source), bad.Output, bad.Raw))
	}
	for _, edge := range g.Dangling() {
		r.problems = append(r.problems, fmt.Sprintf("dangling target %q (%s %s -> %s)",
			edge.Action.Target, entityLabel(edge.Source), edge.Output, edge.Action.Input))
	}
	if loop := g.Loop(); loop != nil {
		r.warnings = append(r.warnings, "I/O loop "+strings.Join(loop, " -> "))
	}
	return r
}

// expand replaces directories with the map files found beneath them.
func expand(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, fsutil.MapExtensions...)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		out = append(out, files...)
	}
	return out, nil
}
