package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "fmt"

// IsComplete reports whether the tree is a complete binary tree.
//
// Every node gets a 0-based level-order index, with the children of index i
// at 2i+1 and 2i+2. The tree is complete if no index reaches the cached node
// counter.
func (t *Tree) IsComplete() bool {
	return checkComplete(t.root, t.size)
}

func checkComplete(root *node, count int) bool {
	if root == nil {
		return true
	}
	type indexed struct {
		n     *node
		index int
	}
	stack := []indexed{{n: root, index: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.index >= count {
			return false
		}
		for s := Left; s <= Right; s++ {
			if c := top.n.child(s); c != nil {
				stack = append(stack, indexed{n: c, index: 2*top.index + 1 + int(s)})
			}
		}
	}
	return true
}

// Restore rebuilds the tree from its level-order values if it is not
// complete. Afterwards the tree is complete and the cached node counter
// equals Size().
//
// Completeness is judged against the counted number of nodes, not the cached
// counter, so a drifted counter cannot hide a gap.
func (t *Tree) Restore() {
	count := t.Size()
	if checkComplete(t.root, count) {
		t.size = count
		return
	}
	t.rebuild(t.Values())
}

// rebuild discards the current structure and re-creates it by appending
// values in order.
func (t *Tree) rebuild(values []int) {
	T().Debugf("cbtree: rebuilding tree of %d nodes", len(values))
	restored := New(values...)
	t.root, t.size = restored.root, restored.size
}

// Check validates the structural invariants of the tree: completeness and
// consistency of the cached node counter.
//
// This checker is intended to be used in tests and for debugging.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrIllegalArguments)
	}
	if cnt := t.Size(); cnt != t.size {
		return fmt.Errorf("%w: size mismatch (%d cached != %d nodes)", ErrBrokenStructure, t.size, cnt)
	}
	if !t.IsComplete() {
		return ErrIncomplete
	}
	// a complete tree has all levels full except the last one
	levels := t.Levels()
	return eachLevel(t.root, func(level int, nodes []*node) error {
		if level < levels && len(nodes) != 1<<(level-1) {
			return fmt.Errorf("%w: level %d has %d nodes", ErrIncomplete, level, len(nodes))
		}
		return nil
	})
}
