package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "slices"

// Heap is a complete binary tree whose values are sorted ascending in level
// order at construction time.
//
// Sorting happens on construction and on every Restore. Mutations in between
// (Push, Insert, Remove) keep the tree complete, but do not maintain any
// ordering between parents and children.
type Heap struct {
	Tree
}

// NewHeap creates a heap from values. values is not modified.
func NewHeap(values ...int) *Heap {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	h := &Heap{}
	for _, v := range sorted {
		err := h.Push(v)
		assert(err == nil, "cbtree.NewHeap: cannot push to fresh heap")
	}
	return h
}

// NewFilledHeap creates a heap of count nodes, all carrying value fill.
func NewFilledHeap(fill int, count int) *Heap {
	return &Heap{Tree: *NewFilled(fill, count)}
}

// Restore rebuilds the heap from its values, sorting them again. Unlike
// Tree.Restore, a heap is rebuilt even if it is complete.
func (h *Heap) Restore() {
	if h.root == nil {
		return
	}
	restored := NewHeap(h.Values()...)
	T().Debugf("cbtree: heap of %d nodes re-sorted", restored.size)
	h.root, h.size = restored.root, restored.size
}
