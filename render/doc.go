/*
Package render outputs complete binary trees to consoles, for diagnostic
purposes.

Two formats are supported. PrintLevelOrder lists the values of a tree level
by level:

	level: 1
	 1
	level: 2
	 2 3

RenderTree draws the tree as an indented outline, with the side of every
child marked:

	root:1 _
	        ╰–– l:2
	        ╰–– r:3

Long levels are wrapped to the line width of the console, using Unicode line
breaking (UAX#14) and East Asian width (UAX#11) rules for measuring.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cbtree'
func tracer() tracing.Trace {
	return tracing.Select("cbtree")
}
