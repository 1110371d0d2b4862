package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
)

// Tree is a complete binary tree of integers, built from linked nodes.
//
// A tree created by
//
//	&Tree{}
//
// is a valid object and behaves like an empty tree.
//
// Tree keeps a cached node counter, which is maintained by the mutators and
// used for positional decisions (see Len). Size recomputes the number of
// nodes by traversal. Both agree as long as the tree has not been tampered
// with; Restore re-synchronizes them.
type Tree struct {
	root *node
	size int // cached number of nodes, maintained incrementally
}

// New creates a tree and appends values in order.
func New(values ...int) *Tree {
	t := &Tree{}
	for _, v := range values {
		err := t.Push(v)
		assert(err == nil, "cbtree.New: cannot push to fresh tree")
	}
	return t
}

// NewFilled creates a tree of count nodes, all carrying value fill.
func NewFilled(fill int, count int) *Tree {
	t := &Tree{}
	for i := 0; i < count; i++ {
		err := t.Push(fill)
		assert(err == nil, "cbtree.NewFilled: cannot push to fresh tree")
	}
	return t
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Len returns the cached node counter in O(1).
func (t *Tree) Len() int {
	return t.size
}

// Size counts the nodes of the tree by a full traversal.
func (t *Tree) Size() int {
	cnt := 0
	eachNode(t.root, func(*node, int) bool {
		cnt++
		return true
	})
	return cnt
}

// Height returns the number of edges on the longest path from the root to a
// leaf. A root-only tree has height 0, an empty tree has height -1.
func (t *Tree) Height() int {
	return t.Levels() - 1
}

// Levels returns the number of populated levels of the tree.
func (t *Tree) Levels() int {
	levels := 0
	_ = eachLevel(t.root, func(level int, _ []*node) error {
		levels = level
		return nil
	})
	return levels
}

// Values returns the values of all nodes in level order.
func (t *Tree) Values() []int {
	values := make([]int, 0, max(t.size, 0))
	eachNode(t.root, func(n *node, _ int) bool {
		values = append(values, n.value)
		return true
	})
	return values
}

// Contains reports whether a node carrying value v is present.
func (t *Tree) Contains(v int) bool {
	found := false
	eachNode(t.root, func(n *node, _ int) bool {
		found = n.value == v
		return !found
	})
	return found
}

// EachLevel visits the tree level by level, from the root level (1) down.
// The callback receives the values of a level from left to right. Iteration
// stops at the first callback error and returns that error to the caller.
func (t *Tree) EachLevel(f func(level int, values []int) error) error {
	return eachLevel(t.root, func(level int, nodes []*node) error {
		values := make([]int, len(nodes))
		for i, n := range nodes {
			values[i] = n.value
		}
		return f(level, values)
	})
}

// Walk visits the nodes of the tree in pre-order (node, left sub-tree, right
// sub-tree). The callback receives the value of each node together with
// the path of sides leading to it from the root; the root has an empty path.
// The path slice is re-used between calls and must not be retained.
// Iteration stops at the first callback error and returns that error.
func (t *Tree) Walk(f func(value int, path []Side) error) error {
	if t.root == nil {
		return nil
	}
	type frame struct {
		n     *node
		depth int
		side  Side
	}
	path := make([]Side, 0, 16)
	stack := []frame{{n: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// in pre-order, the previous node shares all ancestors with top
		if top.depth == 0 {
			path = path[:0]
		} else {
			path = append(path[:top.depth-1], top.side)
		}
		if err := f(top.n.value, path); err != nil {
			return err
		}
		for s := Right; s >= Left; s-- { // push right first, so left is popped first
			if c := top.n.child(s); c != nil {
				stack = append(stack, frame{n: c, depth: top.depth + 1, side: s})
			}
		}
	}
	return nil
}

// --- Mutators --------------------------------------------------------------

// Push appends a new leaf carrying value v at the unique slot which keeps
// the tree complete. The parent of the new node is the node at 1-based level
// order position ⌊(n+1)/2⌋, with n being the cached node counter.
//
// If the parent found has no free child slot, or if the walk ends before
// reaching it, the tree has already been incomplete. Push then returns
// ErrIncomplete and does not modify the tree.
func (t *Tree) Push(v int) error {
	if t.root == nil {
		t.size = 0
		t.root = t.createNode(v)
		return nil
	}
	position := (t.size + 1) / 2
	var err error = ErrIncomplete
	eachNode(t.root, func(n *node, pos int) bool {
		if pos+1 != position {
			return true
		}
		if !n.has(Left) {
			n.children[Left] = t.createNode(v)
			err = nil
		} else if !n.has(Right) {
			n.children[Right] = t.createNode(v)
			err = nil
		}
		return false
	})
	if err != nil {
		T().Infof("cbtree: the tree is incomplete, cannot create node for %d", v)
		return fmt.Errorf("%w: no free slot at position %d", err, position)
	}
	return nil
}

// Insert creates a new node carrying value v at an explicit position, given
// by a 1-based level and a 1-based index within that level. Insert succeeds
// only if the result remains a complete tree, i.e. the position addressed has
// to be the next free slot of the last level, or the first slot of a new
// level below a full last level.
//
// Rejections, each without modifying the tree:
//
//	ErrLevelOutOfRange   level not in [1, Levels()+1]
//	ErrIndexOutOfRange   index not in [1, 2^(level-1)]
//	ErrIncomplete        position would leave a gap
//	ErrPositionTaken     position is occupied
//	ErrCannotInsert      no slot found otherwise
//
// Inserting at level 1, index 1 into an empty tree is the same as Push.
func (t *Tree) Insert(v int, level int, index int) error {
	levels := t.Levels()
	if levels == 0 && level == 1 && index == 1 {
		return t.Push(v)
	}
	if level > levels+1 || level <= 0 {
		return t.rejectInsert(v, ErrLevelOutOfRange, level, index)
	}
	if index <= 0 || level > 62 || index > 1<<(level-1) {
		return t.rejectInsert(v, ErrIndexOutOfRange, level, index)
	}
	if level == levels+1 && index > 1 {
		return t.rejectInsert(v, ErrIncomplete, level, index)
	}
	q := newNodeQueue(t.root)
	for current := 1; current < level; current++ {
		cnt := q.size()
		occupied := 0 // number of nodes already present on the next level
		for i := 0; i < cnt; i++ {
			n := q.pop()
			for s := Left; s <= Right; s++ {
				if c := n.child(s); c != nil {
					q.push(c)
					occupied++
				}
			}
			if current == levels {
				// first slot of a new level; the last level has to be full
				if cnt < 1<<(current-1) {
					return t.rejectInsert(v, ErrIncomplete, level, index)
				}
				assert(n.isLeaf(), "cbtree.Insert: node on last level has children")
				n.children[Left] = t.createNode(v)
				return nil
			}
			if level-current != 1 {
				continue
			}
			if index <= occupied {
				return t.rejectInsert(v, ErrPositionTaken, level, index)
			}
			if index-occupied == 1 {
				if !n.has(Left) {
					n.children[Left] = t.createNode(v)
					return nil
				} else if !n.has(Right) {
					n.children[Right] = t.createNode(v)
					return nil
				}
			}
		}
		if level-current == 1 && index-occupied > 1 {
			return t.rejectInsert(v, ErrIncomplete, level, index)
		}
	}
	return t.rejectInsert(v, ErrCannotInsert, level, index)
}

func (t *Tree) rejectInsert(v int, err error, level, index int) error {
	T().Infof("cbtree: cannot insert %d at level %d, index %d: %s", v, level, index, err)
	return fmt.Errorf("%w: level %d, index %d", err, level, index)
}

// Remove deletes the first node in level order carrying value v.
//
// Removing the root always relocates the deepest, right-most node of the tree
// into the root position, regardless of how many children the root has. For
// other nodes:
//
//   - a node with one child is replaced by that child,
//   - a leaf which is the deepest, right-most node is unlinked,
//   - any other node is replaced by the deepest, right-most node of the tree,
//     which takes over the children of the removed node.
//
// Remove returns ErrEmptyTree for an empty tree and ErrNotFound if v is not
// present. If the search detects a layout which cannot occur in a complete
// tree, it returns ErrBrokenStructure without modifying the tree.
func (t *Tree) Remove(v int) error {
	if t.root == nil {
		T().Infof("cbtree: cannot remove %d, the tree is empty", v)
		return ErrEmptyTree
	}
	parent, side, target, err := findValue(t.root, v)
	if err != nil {
		return err
	}
	if target == nil {
		T().Infof("cbtree: cannot remove %d, value not found", v)
		return fmt.Errorf("%w: %d", ErrNotFound, v)
	}
	if parent == nil { // root match
		t.root = t.relocateLast(target)
		return nil
	}
	switch {
	case target.childCount() == 1:
		parent.children[side] = target.soleChild()
		target.children = [2]*node{}
		t.size--
	default:
		parent.children[side] = t.relocateLast(target)
	}
	return nil
}

// relocateLast detaches the deepest, right-most node of the tree and lets it
// take over the children of target. It returns the node which has to be
// linked into target's slot by the caller, or nil if target itself is the
// deepest, right-most node.
func (t *Tree) relocateLast(target *node) *node {
	last := deepestRightmost(t.root)
	assert(last != nil, "cbtree: relocation in empty tree")
	if last == target {
		if target == t.root {
			t.root, t.size = nil, 0
			return nil
		}
		ok := t.disconnect(last)
		assert(ok, "cbtree: cannot disconnect last node")
		return nil
	}
	ok := t.disconnect(last)
	assert(ok, "cbtree: cannot disconnect last node")
	last.adopt(target)
	T().Debugf("cbtree: node %d relocated to replace %d", last.value, target.value)
	return last
}
