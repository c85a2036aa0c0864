package vmf

import (
	"iter"
	"slices"
)

// Entities is the ordered entity list of a map. Query methods return lazy
// iterators that never modify the list; calling them again restarts the scan.
type Entities []*Entity

// Filter yields the entities for which pred returns true.
func (es Entities) Filter(pred func(*Entity) bool) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range es {
			if pred(e) && !yield(e) {
				return
			}
		}
	}
}

// ByClassname yields entities whose classname equals name.
func (es Entities) ByClassname(name string) iter.Seq[*Entity] {
	return es.ByKeyValue("classname", name)
}

// ByTargetname yields entities whose targetname equals name.
func (es Entities) ByTargetname(name string) iter.Seq[*Entity] {
	return es.ByKeyValue("targetname", name)
}

// ByModel yields entities whose model equals model.
func (es Entities) ByModel(model string) iter.Seq[*Entity] {
	return es.ByKeyValue("model", model)
}

// ByKeyValue yields entities carrying key with the exact value. Any
// occurrence of a repeated key may match.
func (es Entities) ByKeyValue(key, value string) iter.Seq[*Entity] {
	return es.Filter(func(e *Entity) bool {
		for v := range e.KeyValues.All(key) {
			if v == value {
				return true
			}
		}
		return false
	})
}

// First returns the first entity matching pred, or nil.
func (es Entities) First(pred func(*Entity) bool) *Entity {
	for e := range es.Filter(pred) {
		return e
	}
	return nil
}

// FindByID returns the first entity with the given id, or nil.
func (es Entities) FindByID(id int) *Entity {
	return es.First(func(e *Entity) bool {
		got, ok := e.ID()
		return ok && got == id
	})
}

// Append adds entities at the end of the list.
func (es *Entities) Append(e ...*Entity) {
	*es = append(*es, e...)
}

// RemoveByID removes every entity with the given id and returns how many
// were removed.
func (es *Entities) RemoveByID(id int) int {
	return es.RemoveFunc(func(e *Entity) bool {
		got, ok := e.ID()
		return ok && got == id
	})
}

// RemoveFunc removes the entities for which pred returns true, keeping the
// order of the rest, and returns how many were removed.
func (es *Entities) RemoveFunc(pred func(*Entity) bool) int {
	before := len(*es)
	*es = slices.DeleteFunc(*es, pred)
	return before - len(*es)
}
