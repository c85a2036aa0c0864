/*
Package keyvalues reads and writes the brace-delimited key-value text format
used by Valve Map Format (VMF) files.

A document is an ordered list of named blocks. Each block holds an ordered
list of quoted "key" "value" attributes and an ordered list of child blocks:

	world
	{
		"id" "1"
		"classname" "worldspawn"
		solid
		{
			"id" "2"
		}
	}

Both lists are multimaps: the same key or block name may appear any number of
times and every occurrence is kept, in order, through a parse and write cycle.

The package has three layers:

  - Lexer: splits text into identifier, quoted-string and brace tokens.
  - Parser: a single-pass recursive-descent parser producing a Document.
  - Encoder: writes a Document back out in a canonical tab-indented style.

Values are raw strings. Interpreting numbers, vectors or planes is left to
the caller (see package vmf for the typed model).
*/
package keyvalues
