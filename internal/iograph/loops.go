package iograph

import (
	"slices"
)

// Loop finds a chain of named entities that fire back into themselves, such
// as a relay triggering a timer that triggers the relay. It returns the
// targetnames along the first loop found, starting and ending with the same
// name, or nil. Names are visited in sorted order so the result is stable.
func (g *Graph) Loop() []string {
	next := make(map[string][]string)
	for _, e := range g.edges {
		from := fold(e.Source.Targetname())
		if from == "" {
			continue
		}
		for _, ent := range g.Resolve(e) {
			to := fold(ent.Targetname())
			if to != "" && !slices.Contains(next[from], to) {
				next[from] = append(next[from], to)
			}
		}
	}
	for name := range next {
		slices.Sort(next[name])
	}

	// permanent: fully explored, on no loop through the current path.
	// stack: names on the current path, in order.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		if permanent[name] {
			return nil
		}
		if onStack[name] {
			start := slices.Index(stack, name)
			return append(slices.Clone(stack[start:]), name)
		}

		onStack[name] = true
		stack = append(stack, name)
		for _, to := range next[name] {
			if loop := visit(to); loop != nil {
				return loop
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, name)
		permanent[name] = true
		return nil
	}

	for _, name := range g.Names() {
		if loop := visit(name); loop != nil {
			return loop
		}
	}
	return nil
}
