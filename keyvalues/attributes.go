package keyvalues

import (
	"iter"
	"slices"
)

// Attribute is a single "key" "value" pair.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an ordered multimap. A key may appear more than once and every
// occurrence keeps its position. Lookups are linear scans, which is fine for
// the handful of keys a block usually carries.
type Attributes []Attribute

// Get returns the first value stored under key, or "" when absent.
func (a Attributes) Get(key string) string {
	v, _ := a.Lookup(key)
	return v
}

// Lookup returns the first value stored under key and whether it was found.
func (a Attributes) Lookup(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// All yields every value stored under key, in order.
func (a Attributes) All(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, attr := range a {
			if attr.Key == key && !yield(attr.Value) {
				return
			}
		}
	}
}

// Count returns how many times key occurs.
func (a Attributes) Count(key string) int {
	n := 0
	for _, attr := range a {
		if attr.Key == key {
			n++
		}
	}
	return n
}

// Has reports whether key occurs at least once.
func (a Attributes) Has(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Keys returns the distinct keys in first-occurrence order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		if !slices.Contains(keys, attr.Key) {
			keys = append(keys, attr.Key)
		}
	}
	return keys
}

// Set replaces the value of the first occurrence of key in place, or appends
// a new pair when key is absent. Later duplicates are left untouched.
func (a *Attributes) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	a.Add(key, value)
}

// Add appends a pair, even if key is already present.
func (a *Attributes) Add(key, value string) {
	*a = append(*a, Attribute{Key: key, Value: value})
}

// Del removes every occurrence of key and returns how many were removed.
func (a *Attributes) Del(key string) int {
	before := len(*a)
	*a = slices.DeleteFunc(*a, func(attr Attribute) bool { return attr.Key == key })
	return before - len(*a)
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return slices.Clone(a)
}
