// Package iograph builds the entity input/output graph of a map.
//
// Nodes are entities, addressed by targetname. Every connection entry of an
// entity is an Edge from that entity to whatever its action's target names.
// A target resolves the way the engine resolves it at run time:
//
//   - names starting with "!" (!self, !activator, !player...) are resolved
//     by the engine and are never dangling;
//   - a trailing "*" matches every targetname with that prefix;
//   - otherwise the target matches entities whose targetname or classname
//     equals it.
//
// Matching ignores case, as the engine does.
package iograph
