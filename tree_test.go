package cbtree

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTracing(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

func expectValues(t *testing.T, tree *Tree, expected ...int) {
	t.Helper()
	if values := tree.Values(); !slices.Equal(values, expected) {
		t.Errorf("expected level order %v, have %v", expected, values)
	}
	if err := tree.Check(); err != nil {
		t.Errorf("expected tree to validate, got %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := &Tree{}
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Size() != 0 {
		t.Errorf("expected zero tree to be empty")
	}
	if tree.Height() != -1 || tree.Levels() != 0 {
		t.Errorf("unexpected empty tree height=%d levels=%d", tree.Height(), tree.Levels())
	}
	if !tree.IsComplete() {
		t.Errorf("expected empty tree to be complete")
	}
	if err := tree.Push(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1)
	if tree.Height() != 0 {
		t.Errorf("expected root-only tree to have height 0, has %d", tree.Height())
	}
}

func TestPushLevelOrder(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2, 3, 4, 5)
	expectValues(t, tree, 1, 2, 3, 4, 5)
	if tree.Len() != 5 || tree.Size() != 5 {
		t.Errorf("expected size 5, have len=%d size=%d", tree.Len(), tree.Size())
	}
	if tree.Height() != 2 || tree.Levels() != 3 {
		t.Errorf("expected height 2 / 3 levels, have %d / %d", tree.Height(), tree.Levels())
	}
}

func TestPushKeepsCompleteness(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := &Tree{}
	for i := 0; i < 100; i++ {
		if err := tree.Push(i); err != nil {
			t.Fatalf("push #%d: unexpected error: %v", i, err)
		}
		if !tree.IsComplete() {
			t.Fatalf("tree incomplete after push #%d", i)
		}
	}
	if tree.Size() != 100 || tree.Levels() != 7 {
		t.Errorf("expected 100 nodes on 7 levels, have %d on %d", tree.Size(), tree.Levels())
	}
}

func TestPushIntoFullParent(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2, 3)
	tree.size = 1 // stale counter points Push to the root, which is full
	fp := tree.Fingerprint()
	err := tree.Push(4)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if tree.Len() != 1 || tree.Fingerprint() != fp {
		t.Errorf("rejected push modified the tree")
	}
}

func TestNewFilled(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := NewFilled(7, 3)
	expectValues(t, tree, 7, 7, 7)
	if !tree.root.has(Left) || !tree.root.has(Right) || !tree.root.child(Left).isLeaf() {
		t.Errorf("expected root with two leaf children")
	}
	if !tree.IsComplete() {
		t.Errorf("expected filled tree to be complete")
	}
}

func TestContains(t *testing.T) {
	tree := New(4, 8, 15, 16, 23, 42)
	if !tree.Contains(23) || tree.Contains(5) {
		t.Errorf("Contains does not reflect tree content")
	}
}

func TestEachLevel(t *testing.T) {
	tree := New(1, 2, 3, 4, 5)
	var levels [][]int
	err := tree.EachLevel(func(level int, values []int) error {
		if level != len(levels)+1 {
			t.Errorf("unexpected level %d", level)
		}
		levels = append(levels, values)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]int{{1}, {2, 3}, {4, 5}}
	if len(levels) != len(expected) {
		t.Fatalf("expected %d levels, have %d", len(expected), len(levels))
	}
	for i := range expected {
		if !slices.Equal(levels[i], expected[i]) {
			t.Errorf("level %d: expected %v, have %v", i+1, expected[i], levels[i])
		}
	}
	stop := errors.New("stop")
	if err := tree.EachLevel(func(int, []int) error { return stop }); err != stop {
		t.Errorf("expected callback error to be returned, got %v", err)
	}
}

func TestWalk(t *testing.T) {
	tree := New(1, 2, 3, 4, 5)
	var visited []string
	err := tree.Walk(func(value int, path []Side) error {
		var b strings.Builder
		for _, s := range path {
			b.WriteString(s.String())
		}
		visited = append(visited, b.String()+":"+string(rune('0'+value)))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{":1", "l:2", "ll:4", "lr:5", "r:3"}
	if !slices.Equal(visited, expected) {
		t.Errorf("expected pre-order %v, have %v", expected, visited)
	}
}

// --- Insert ----------------------------------------------------------------

func TestInsertIntoEmptyTree(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := &Tree{}
	if err := tree.Insert(1, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1)
	empty := &Tree{}
	if err := empty.Insert(1, 2, 1); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("expected ErrLevelOutOfRange, got %v", err)
	}
	if err := empty.Insert(1, 1, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestInsertNextSlot(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2)
	if err := tree.Insert(3, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1, 2, 3)
	if err := tree.Insert(4, 3, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1, 2, 3, 4)
	if err := tree.Insert(5, 3, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1, 2, 3, 4, 5)
	if err := tree.Insert(6, 3, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1, 2, 3, 4, 5, 6)
}

func TestInsertRejections(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	cases := []struct {
		values       []int
		level, index int
		err          error
	}{
		{[]int{1, 2, 3}, 0, 1, ErrLevelOutOfRange},
		{[]int{1, 2, 3}, 4, 1, ErrLevelOutOfRange},
		{[]int{1, 2, 3}, 2, 3, ErrIndexOutOfRange},
		{[]int{1, 2, 3}, 2, 0, ErrIndexOutOfRange},
		{[]int{1, 2, 3}, 3, 2, ErrIncomplete},
		{[]int{1}, 2, 2, ErrIncomplete},
		{[]int{1, 2}, 3, 1, ErrIncomplete},
		{[]int{1, 2}, 2, 1, ErrPositionTaken},
		{[]int{1, 2, 3, 4}, 3, 1, ErrPositionTaken},
		{[]int{1, 2, 3, 4}, 3, 3, ErrIncomplete},
		{[]int{1, 2, 3, 4}, 2, 2, ErrPositionTaken},
		{[]int{1}, 1, 1, ErrCannotInsert},
	}
	for i, c := range cases {
		tree := New(c.values...)
		fp := tree.Fingerprint()
		err := tree.Insert(99, c.level, c.index)
		if !errors.Is(err, c.err) {
			t.Errorf("case %d: expected %v, got %v", i, c.err, err)
		}
		if tree.Fingerprint() != fp || tree.Len() != len(c.values) {
			t.Errorf("case %d: rejected insert modified the tree", i)
		}
	}
}

// --- Remove ----------------------------------------------------------------

func TestRemoveExample(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2, 3, 4, 5)
	if err := tree.Remove(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValues(t, tree, 1, 5, 3, 4)
	if tree.Size() != 4 {
		t.Errorf("expected size 4, have %d", tree.Size())
	}
}

func TestRemoveCases(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	cases := []struct {
		name     string
		values   []int
		remove   int
		expected []int
	}{
		{"root of three", []int{1, 2, 3}, 1, []int{3, 2}},
		{"root with one child", []int{1, 2}, 1, []int{2}},
		{"last leaf", []int{1, 2, 3, 4, 5}, 5, []int{1, 2, 3, 4}},
		{"inner leaf", []int{1, 2, 3, 4, 5}, 3, []int{1, 2, 5, 4}},
		{"one child", []int{1, 2, 3, 4}, 2, []int{1, 4, 3}},
		{"two children", []int{1, 2, 3, 4, 5, 6, 7, 8}, 3, []int{1, 2, 8, 4, 5, 6, 7}},
		{"first of duplicates", []int{5, 5, 5}, 5, []int{5, 5}},
		{"duplicate below root", []int{1, 2, 2, 3}, 2, []int{1, 3, 2}},
	}
	for _, c := range cases {
		tree := New(c.values...)
		if err := tree.Remove(c.remove); err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if values := tree.Values(); !slices.Equal(values, c.expected) {
			t.Errorf("%s: expected %v, have %v", c.name, c.expected, values)
		}
		if err := tree.Check(); err != nil {
			t.Errorf("%s: expected tree to validate, got %v", c.name, err)
		}
	}
}

func TestRemoveSingleRoot(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(9)
	if err := tree.Remove(9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Errorf("expected tree to be empty, len=%d", tree.Len())
	}
	if err := tree.Remove(9); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree, got %v", err)
	}
}

func TestRemoveNotFound(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2, 3, 4)
	fp := tree.Fingerprint()
	if err := tree.Remove(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if tree.Fingerprint() != fp || tree.Len() != 4 {
		t.Errorf("failed remove modified the tree")
	}
}

func TestRemoveFromBrokenTree(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := &Tree{root: &node{value: 1}, size: 3}
	tree.root.children[Right] = &node{value: 2}
	tree.root.children[Right].children[Left] = &node{value: 3}
	if err := tree.Remove(3); !errors.Is(err, ErrBrokenStructure) {
		t.Errorf("expected ErrBrokenStructure, got %v", err)
	}
	if tree.Size() != 3 {
		t.Errorf("rejected remove modified the tree")
	}
}

// --- Completeness and restore ----------------------------------------------

func TestIsCompleteDetectsGap(t *testing.T) {
	tree := &Tree{root: &node{value: 1}, size: 2}
	tree.root.children[Right] = &node{value: 2}
	if tree.IsComplete() {
		t.Errorf("expected tree with missing left child to be incomplete")
	}
	if err := tree.Check(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("expected Check to flag ErrIncomplete, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := &Tree{root: &node{value: 1}, size: 4}
	tree.root.children[Right] = &node{value: 2}
	tree.root.children[Right].children[Right] = &node{value: 3}
	tree.root.children[Right].children[Right].children[Left] = &node{value: 4}
	tree.Restore()
	expectValues(t, tree, 1, 2, 3, 4)
	if tree.Len() != tree.Size() {
		t.Errorf("cached size %d differs from counted size %d", tree.Len(), tree.Size())
	}
	fp := tree.Fingerprint()
	tree.Restore()
	if tree.Fingerprint() != fp {
		t.Errorf("second restore changed the tree")
	}
}

func TestRestoreStaleCounter(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tree := New(1, 2, 3)
	tree.size = 2
	if tree.IsComplete() {
		t.Fatalf("expected stale counter to make tree incomplete")
	}
	tree.Restore()
	expectValues(t, tree, 1, 2, 3)
	if tree.Len() != 3 {
		t.Errorf("expected restored counter 3, have %d", tree.Len())
	}
}

func TestFingerprint(t *testing.T) {
	if New(1, 2, 3).Fingerprint() != New(1, 2, 3).Fingerprint() {
		t.Errorf("expected equal trees to have equal fingerprints")
	}
	l := &Tree{root: &node{value: 1}, size: 2}
	l.root.children[Left] = &node{value: 2}
	r := &Tree{root: &node{value: 1}, size: 2}
	r.root.children[Right] = &node{value: 2}
	if l.Fingerprint() == r.Fingerprint() {
		t.Errorf("expected different shapes to have different fingerprints")
	}
}

func TestTree2Dot(t *testing.T) {
	var b strings.Builder
	Tree2Dot(New(1, 2, 3, 4), &b)
	dot := b.String()
	t.Logf("\n%s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") {
		t.Errorf("expected DOT digraph, have %q", dot)
	}
	if n := strings.Count(dot, "->"); n != 3 {
		t.Errorf("expected 3 edges, have %d", n)
	}
}
