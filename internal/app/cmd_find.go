package app

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/entityexpr"
	"github.com/specialistvlad/vmfgo/vmf"
)

// find lists the entities passing every configured filter.
func (a *App) find(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	pred, diags := entityexpr.Compile(a.config.Where)
	if diags.HasErrors() {
		return fmt.Errorf("invalid -where expression: %w", diags)
	}
	logger.Debug("Predicate compiled.", "references", pred.References())

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	total := 0
	for _, path := range a.config.Files {
		m, err := loadMap(ctx, path)
		if err != nil {
			return err
		}

		candidates, err := a.candidates(m)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, e := range candidates {
			if a.config.Class != "" && e.Classname() != a.config.Class {
				continue
			}
			ok, err := pred.Match(e)
			if err != nil {
				return fmt.Errorf("%s: entity %s: %w", path, entityLabel(e), err)
			}
			if !ok {
				continue
			}
			total++
			id := "-"
			if n, ok := e.ID(); ok {
				id = fmt.Sprint(n)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", path, id, e.Classname(), e.Targetname())
		}
	}
	logger.Debug("Find finished.", "matches", total)
	return tw.Flush()
}

// candidates narrows the search to a visgroup when one is configured.
func (a *App) candidates(m *vmf.Map) ([]*vmf.Entity, error) {
	if a.config.VisGroup == "" {
		return m.Entities, nil
	}
	group, ok := m.VisGroups.FindByName(a.config.VisGroup)
	if !ok {
		return nil, errors.New("no visgroup named " + a.config.VisGroup)
	}
	seq, _ := m.EntitiesInVisGroup(group.ID, true)
	var out []*vmf.Entity
	for e := range seq {
		out = append(out, e)
	}
	return out, nil
}

// entityLabel names an entity for messages: its targetname when it has one,
// otherwise its id and classname.
func entityLabel(e *vmf.Entity) string {
	if name := e.Targetname(); name != "" {
		return fmt.Sprintf("%q", name)
	}
	if id, ok := e.ID(); ok {
		return fmt.Sprintf("#%d (%s)", id, e.Classname())
	}
	return e.Classname()
}
