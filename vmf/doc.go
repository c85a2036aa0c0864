/*
Package vmf is a typed model of Valve Map Format files layered over the
generic keyvalues tree.

A Map is built from a parsed keyvalues.Document with FromDocument, or directly
from text with Parse and Read. Construction never fails: blocks and attributes
the model does not recognize, and recognized scalars whose text does not
re-format identically, are kept in a Passthrough bag on the nearest typed
ancestor together with the index they had among their siblings.

Every typed struct also remembers the order in which its recognized keys and
child blocks appeared. ToDocument replays that order, so a map that is decoded
and encoded without changes reproduces the original document. Items appended
by the caller are emitted right after the last original item of the same kind,
and fields that were absent from the source are only written when set.

Entities are kept as ordered key-value multimaps; the Entities slice type
carries the query helpers (ByClassname, ByTargetname, Filter and friends) as
lazy iterators.
*/
package vmf
