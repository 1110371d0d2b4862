/*
Package cbtree implements a complete binary tree and a derived binary heap,
both backed by linked nodes instead of an array.

Complete Binary Trees

A binary tree is complete if every level is fully populated, except possibly
the last one, which is filled from left to right without gaps. Array-based
heaps get this property for free: the node with level-order index i has its
children at 2i+1 and 2i+2. A linked tree does not have index arithmetic at
its disposal, so every mutation in this package derives positions by walking
the tree breadth first:

	Operation      |  Strategy
	---------------+-------------------------------------------------------
	Push           |  walk to the parent of the next free slot
	Insert         |  walk level by level, counting occupied child slots
	Remove         |  relocate the deepest, right-most node into the hole
	IsComplete     |  assign level-order indices and compare with the size
	Restore        |  dump values in level order and rebuild from scratch

All positional lookups are O(n). Trees are not safe for concurrent use;
clients have to serialize access to mutating calls.

Mutators report rejected operations as errors of type TreeError. A nil error
means the operation has been applied.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package cbtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// TreeError is an error type for the cbtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrEmptyTree is flagged when removing from a tree without nodes.
const ErrEmptyTree = TreeError("tree is empty")

// ErrNotFound is flagged when a value to remove is not present in the tree.
const ErrNotFound = TreeError("value not found")

// ErrLevelOutOfRange is flagged by Insert for levels outside of [1, levels+1].
const ErrLevelOutOfRange = TreeError("level out of range")

// ErrIndexOutOfRange is flagged by Insert for inter-level indices outside
// of [1, 2^(level-1)].
const ErrIndexOutOfRange = TreeError("index out of range")

// ErrIncomplete is flagged whenever an operation would leave the tree
// incomplete, or when it finds the tree incomplete already.
const ErrIncomplete = TreeError("completeness constraint violated")

// ErrPositionTaken is flagged by Insert if the target slot is occupied.
const ErrPositionTaken = TreeError("position is taken")

// ErrCannotInsert is flagged by Insert if no slot could be found.
const ErrCannotInsert = TreeError("could not insert")

// ErrBrokenStructure is flagged if an operation detects a node layout which
// cannot occur in a complete tree.
const ErrBrokenStructure = TreeError("tree structure is broken")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
