package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// nodeQueue is the FIFO every breadth-first walk of this package runs on.
type nodeQueue struct {
	q *linkedlistqueue.Queue
}

func newNodeQueue(start *node) nodeQueue {
	q := nodeQueue{q: linkedlistqueue.New()}
	q.push(start)
	return q
}

// push enqueues n; empty slots are skipped.
func (q nodeQueue) push(n *node) {
	if n != nil {
		q.q.Enqueue(n)
	}
}

func (q nodeQueue) pop() *node {
	v, ok := q.q.Dequeue()
	if !ok {
		return nil
	}
	return v.(*node)
}

func (q nodeQueue) empty() bool {
	return q.q.Empty()
}

func (q nodeQueue) size() int {
	return q.q.Size()
}

// eachNode visits the nodes of a (sub-)tree in level order. The callback
// receives the 0-based visiting position of the node. Iteration stops as
// soon as f returns false.
func eachNode(root *node, f func(n *node, pos int) bool) {
	if root == nil {
		return
	}
	q := newNodeQueue(root)
	for pos := 0; !q.empty(); pos++ {
		n := q.pop()
		if !f(n, pos) {
			return
		}
		q.push(n.child(Left))
		q.push(n.child(Right))
	}
}

// eachLevel visits the nodes of a (sub-)tree level by level. Levels are
// 1-based. Iteration stops at the first callback error and returns that error
// to the caller.
func eachLevel(root *node, f func(level int, nodes []*node) error) error {
	if root == nil {
		return nil
	}
	q := newNodeQueue(root)
	for level := 1; !q.empty(); level++ {
		cnt := q.size()
		nodes := make([]*node, 0, cnt)
		for i := 0; i < cnt; i++ {
			n := q.pop()
			q.push(n.child(Left))
			q.push(n.child(Right))
			nodes = append(nodes, n)
		}
		if err := f(level, nodes); err != nil {
			return err
		}
	}
	return nil
}

// deepestRightmost finds the last node of a (sub-)tree in level order. It
// walks level by level and remembers the last node dequeued per level; after
// the final level this is the deepest, right-most node. For a single node the
// node itself is returned, for an empty tree nil.
func deepestRightmost(root *node) *node {
	if root == nil {
		return nil
	}
	result := root
	q := newNodeQueue(root)
	for !q.empty() {
		cnt := q.size()
		for i := 0; i < cnt; i++ {
			n := q.pop()
			q.push(n.child(Left))
			q.push(n.child(Right))
			if i == cnt-1 {
				result = n
			}
		}
	}
	return result
}

// disconnect unlinks target from its parent and decrements the size counter.
// target is matched by identity. Callers have to make sure that target is
// reachable from the root and is not the root itself; if no parent is found,
// disconnect is a no-op and returns false.
func (t *Tree) disconnect(target *node) bool {
	var found bool
	eachNode(t.root, func(n *node, _ int) bool {
		for s := Left; s <= Right; s++ {
			if n.child(s) == target {
				n.children[s] = nil
				t.size--
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// findValue locates the first node in level order carrying value v. It
// returns the node's parent and the side of the node below its parent. For a
// match at the root, parent is nil.
//
// The search refuses to continue below a node with a right child but no left
// child, as this cannot happen in a complete tree.
func findValue(root *node, v int) (parent *node, side Side, found *node, err error) {
	if root == nil {
		return nil, Left, nil, ErrEmptyTree
	}
	if root.value == v {
		return nil, Left, root, nil
	}
	eachNode(root, func(n *node, pos int) bool {
		if !n.has(Left) && n.has(Right) {
			err = ErrBrokenStructure
			T().Errorf("cbtree: node #%d has a right child but no left child", pos)
			return false
		}
		for s := Left; s <= Right; s++ {
			if c := n.child(s); c != nil && c.value == v {
				parent, side, found = n, s, c
				return false
			}
		}
		return true
	})
	return
}
