/*
Package valuefile loads integer values from text files into complete binary
trees.

A value file contains integers separated by white space or commas. Text from
a '#' up to the end of the line is a comment:

	# first level
	42
	# second level
	7, 8

Loading happens in a reader goroutine, which publishes every value as soon as
it has been parsed. The API is synchronous nevertheless.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package valuefile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cbtree'
func tracer() tracing.Trace {
	return tracing.Select("cbtree")
}
