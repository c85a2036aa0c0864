// Package entityexpr compiles HCL expressions into entity predicates.
//
// An expression sees the entity's key-values as variables. Every key that is
// a valid HCL identifier is bound to its first value as a string, so
// `classname == "light" && targetname != "lamp_01"` reads naturally. Keys
// that are not identifiers are reachable through the `kv` object
// (`kv["0"]`). Three names are reserved and shadow keys of the same name:
//
//	kv      object of every key to its first value
//	id      the entity id as a number, or null
//	solids  number of brushes the entity owns
//
// A referenced identifier the entity does not carry evaluates to the empty
// string, the way the engine reads an absent key-value. Use has(key) to tell
// a missing key from an empty one. The functions available are listed by
// Functions.
package entityexpr
