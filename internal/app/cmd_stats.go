package app

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) stats(ctx context.Context) error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	for i, path := range a.config.Files {
		m, err := loadMap(ctx, path)
		if err != nil {
			return err
		}
		s := m.Stats()

		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, path)
		fmt.Fprintf(tw, "  entities\t%d\t(%d hidden, %d brush)\n", s.Entities, s.HiddenEntities, s.BrushEntities)
		fmt.Fprintf(tw, "  world solids\t%d\t\n", s.WorldSolids)
		fmt.Fprintf(tw, "  sides\t%d\t(%d displacement)\n", s.Sides, s.Displacements)
		fmt.Fprintf(tw, "  connections\t%d\t\n", s.Connections)
		fmt.Fprintf(tw, "  visgroups\t%d\t\n", s.VisGroups)
		fmt.Fprintf(tw, "  unknown blocks\t%d\t\n", s.Passthrough)
	}
	return tw.Flush()
}
