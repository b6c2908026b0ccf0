// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ktree/internal/invariants"
)

// Tree is an ordered k-ary tree of values of type T. Every node has an
// arbitrary number of children kept in caller-chosen order; there is no
// balancing and no ordering by key.
//
// A Tree has exactly one root. The root is followed by a sentinel node which
// marks the end of forward traversals; an empty tree consists of the sentinel
// alone.
//
// Tree is not safe for concurrent use. Multiple iterators may be used over the
// same tree as long as it is not mutated concurrently.
type Tree[T any] struct {
	opts *Options
	s    *nodes[T]
}

// New returns an empty tree. A nil opts is equivalent to &Options{}.
func New[T any](opts *Options) *Tree[T] {
	opts = opts.Clone()
	opts.EnsureDefaults()
	if err := opts.Validate(); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "ktree: invalid options"))
	}
	return &Tree[T]{opts: opts, s: newNodes[T](opts)}
}

// NewWithRoot returns a tree holding the single value v.
func NewWithRoot[T any](v T, opts *Options) *Tree[T] {
	t := New[T](opts)
	t.SetRoot(v)
	return t
}

// Options returns the options the tree was created with.
func (t *Tree[T]) Options() *Options {
	return t.opts
}

// Empty returns true if the tree holds no values.
func (t *Tree[T]) Empty() bool {
	return t.s.root == t.s.foot
}

// Size returns the number of values in the tree. It walks the whole tree.
func (t *Tree[T]) Size() int {
	n := 0
	for i := t.s.root; i != t.s.foot; i = t.s.step(i, forward) {
		n++
	}
	return n
}

// Root returns the position of the root, which is the end position if the
// tree is empty.
func (t *Tree[T]) Root() Iterator[T] {
	return t.s.pos(t.s.root)
}

// Begin returns a pre-order iterator positioned at the root.
func (t *Tree[T]) Begin() DepthFirstIter[T] {
	return t.Root().DepthFirst()
}

// End returns a pre-order iterator positioned at the sentinel.
func (t *Tree[T]) End() DepthFirstIter[T] {
	return t.s.pos(t.s.foot).DepthFirst()
}

// RBegin returns a reverse pre-order iterator positioned at the last node in
// pre-order.
func (t *Tree[T]) RBegin() DepthFirstIter[T] {
	return t.s.pos(t.s.step(t.s.foot, backward)).ReverseDepthFirst()
}

// REnd returns a reverse pre-order iterator positioned before the root.
func (t *Tree[T]) REnd() DepthFirstIter[T] {
	return t.s.pos(nilNode).ReverseDepthFirst()
}

// LevelBegin returns a level-order iterator positioned at the root.
func (t *Tree[T]) LevelBegin() LevelOrderIter[T] {
	return makeLevelOrderIter(t.s, t.s.root)
}

// LevelEnd returns a level-order iterator positioned at the sentinel.
func (t *Tree[T]) LevelEnd() LevelOrderIter[T] {
	return makeLevelOrderIter(t.s, t.s.foot)
}

// Preorder returns the values of the tree in pre-order.
func (t *Tree[T]) Preorder() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// ReversePreorder returns the values of the tree in reverse pre-order.
func (t *Tree[T]) ReversePreorder() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.RBegin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// LevelOrder returns the values of the tree in level order.
func (t *Tree[T]) LevelOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.LevelBegin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// anchor validates a position passed to a mutator: it must belong to this
// tree, be live, and not be the sentinel.
func (t *Tree[T]) anchor(it Iterator[T], op string) nodeIndex {
	if it.s != t.s {
		panic(errors.AssertionFailedf("ktree: %s: position %s belongs to another tree", op, it))
	}
	i := it.index()
	if i == t.s.foot {
		panic(errors.AssertionFailedf("ktree: %s: anchor is the end position", op))
	}
	return i
}

// SetRoot sets the value of the root. On an empty tree a root node is
// allocated and linked in front of the sentinel; otherwise the value of the
// existing root is overwritten. It returns the position of the root.
func (t *Tree[T]) SetRoot(v T) Iterator[T] {
	s := t.s
	if s.root != s.foot {
		s.at(s.root).value = v
		return s.pos(s.root)
	}
	r := s.alloc(v)
	s.at(r).right = s.foot
	s.at(s.foot).left = r
	s.root = r
	t.maybeVerify()
	return s.pos(r)
}

// InsertLeft inserts v as the immediate left sibling of anchor and returns its
// position. The anchor must not be the root: the root never has siblings.
func (t *Tree[T]) InsertLeft(anchor Iterator[T], v T) Iterator[T] {
	s := t.s
	i := t.anchor(anchor, "insert-left")
	if i == s.root {
		panic(errors.AssertionFailedf("ktree: insert-left: the root cannot have siblings"))
	}
	j := s.alloc(v)
	n, m := s.at(i), s.at(j)
	m.parent = n.parent
	m.left = n.left
	m.right = i
	if n.left != nilNode {
		s.at(n.left).right = j
	}
	n.left = j
	if p := s.at(n.parent); p.childBegin == i {
		p.childBegin = j
	}
	t.maybeVerify()
	return s.pos(j)
}

// InsertRight inserts v as the immediate right sibling of anchor and returns
// its position. The anchor must not be the root: the root never has siblings.
func (t *Tree[T]) InsertRight(anchor Iterator[T], v T) Iterator[T] {
	s := t.s
	i := t.anchor(anchor, "insert-right")
	if i == s.root {
		panic(errors.AssertionFailedf("ktree: insert-right: the root cannot have siblings"))
	}
	j := s.alloc(v)
	n, m := s.at(i), s.at(j)
	m.parent = n.parent
	m.left = i
	m.right = n.right
	if n.right != nilNode {
		s.at(n.right).left = j
	}
	n.right = j
	if p := s.at(n.parent); p.childEnd == i {
		p.childEnd = j
	}
	t.maybeVerify()
	return s.pos(j)
}

// AppendChild inserts v as the last child of anchor and returns its position.
func (t *Tree[T]) AppendChild(anchor Iterator[T], v T) Iterator[T] {
	s := t.s
	i := t.anchor(anchor, "append-child")
	n := s.at(i)
	if n.childEnd == nilNode {
		return t.PrependChild(anchor, v)
	}
	j := s.alloc(v)
	m := s.at(j)
	m.parent = i
	m.left = n.childEnd
	s.at(n.childEnd).right = j
	n.childEnd = j
	t.maybeVerify()
	return s.pos(j)
}

// PrependChild inserts v as the first child of anchor and returns its
// position.
func (t *Tree[T]) PrependChild(anchor Iterator[T], v T) Iterator[T] {
	s := t.s
	i := t.anchor(anchor, "prepend-child")
	j := s.alloc(v)
	n, m := s.at(i), s.at(j)
	m.parent = i
	if n.childBegin == nilNode {
		n.childBegin, n.childEnd = j, j
	} else {
		m.right = n.childBegin
		s.at(n.childBegin).left = j
		n.childBegin = j
	}
	t.maybeVerify()
	return s.pos(j)
}

// Erase removes the node at it together with its entire subtree. It returns
// the position of the node's right sibling if there is one, and of its parent
// otherwise. Erasing the root empties the tree and returns the end position.
//
// Positions referring to any erased node become stale.
func (t *Tree[T]) Erase(it Iterator[T]) Iterator[T] {
	s := t.s
	i := t.anchor(it, "erase")
	n := s.at(i)
	if n.childBegin != nilNode {
		s.releaseChildren(i)
	}
	next := n.right
	if next == nilNode {
		next = n.parent
	}
	if n.left != nilNode {
		s.at(n.left).right = n.right
	}
	if n.right != nilNode {
		s.at(n.right).left = n.left
	}
	if n.parent != nilNode {
		p := s.at(n.parent)
		if p.childBegin == i {
			p.childBegin = n.right
		}
		if p.childEnd == i {
			p.childEnd = n.left
		}
	}
	if i == s.root {
		s.root = s.foot
	}
	s.release(i)
	t.maybeVerify()
	return s.pos(next)
}

// Clear removes every value from the tree. It is a no-op on an empty tree.
func (t *Tree[T]) Clear() {
	if t.Empty() {
		return
	}
	t.Erase(t.Root())
}

// Move transfers the contents of t into a new tree and leaves t empty. Any
// outstanding positions into t now refer to the returned tree.
func (t *Tree[T]) Move() *Tree[T] {
	u := &Tree[T]{opts: t.opts, s: t.s}
	t.s = newNodes[T](t.opts)
	return u
}

// MoveFrom discards the contents of t and transfers the contents of src into
// it, leaving src empty. Positions into src follow the nodes into t; positions
// into the previous contents of t must no longer be used.
func (t *Tree[T]) MoveFrom(src *Tree[T]) {
	if t == src || t.s == src.s {
		return
	}
	t.Clear()
	t.s = src.s
	t.s.opts = t.opts
	src.s = newNodes[T](src.opts)
}

func (t *Tree[T]) maybeVerify() {
	if !invariants.Enabled && !t.opts.VerifyInvariants {
		return
	}
	if err := t.Check(); err != nil {
		t.opts.Logger.Fatalf("%+v", err)
	}
}
