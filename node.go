package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

// Side selects one of the two child slots of a node.
type Side int8

// A node has a left and a right child slot.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "l"
	}
	return "r"
}

// node is exclusively owned by its parent, or by the tree for the root.
// A child slot is either occupied by a node or empty (nil). There are no
// back-references.
type node struct {
	value    int
	children [2]*node
}

func (n *node) child(s Side) *node {
	return n.children[s]
}

func (n *node) has(s Side) bool {
	return n.children[s] != nil
}

func (n *node) isLeaf() bool {
	return n.children[Left] == nil && n.children[Right] == nil
}

// childCount returns the number of occupied child slots.
func (n *node) childCount() int {
	cnt := 0
	for _, c := range n.children {
		if c != nil {
			cnt++
		}
	}
	return cnt
}

// soleChild returns the only child of a node with exactly one child.
func (n *node) soleChild() *node {
	assert(n.childCount() == 1, "soleChild called for node without exactly one child")
	if n.children[Left] != nil {
		return n.children[Left]
	}
	return n.children[Right]
}

// adopt moves the children of other over to n. n must not be a child of other
// anymore.
func (n *node) adopt(other *node) {
	assert(other.children[Left] != n && other.children[Right] != n, "node cannot adopt its own siblings")
	n.children = other.children
	other.children = [2]*node{}
}

// createNode is the only place where nodes are allocated. It bumps the size
// counter of the tree.
func (t *Tree) createNode(value int) *node {
	t.size++
	return &node{value: value}
}
