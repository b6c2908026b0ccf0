// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"github.com/cockroachdb/crlib/fifo"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Iterator is a position in a Tree: a node index plus the generation of the
// slot at the time the position was taken. A position can refer to a node
// holding a value, to the tree's sentinel (the end of a forward traversal), or
// to nil (the end of a reverse traversal).
//
// Positions survive insertions anywhere in the tree. Erasing the node a
// position refers to makes the position stale; using a stale position panics.
// Moving a tree (see Tree.Move) carries its positions along with its nodes.
//
// The zero Iterator is not associated with any tree.
type Iterator[T any] struct {
	s   *nodes[T]
	i   nodeIndex
	gen uint32
}

func (s *nodes[T]) pos(i nodeIndex) Iterator[T] {
	if i == nilNode {
		return Iterator[T]{s: s}
	}
	return Iterator[T]{s: s, i: i, gen: s.at(i).gen}
}

// index returns the slot of the position after verifying that it is neither
// nil nor stale. The sentinel is accepted.
func (it Iterator[T]) index() nodeIndex {
	if it.s == nil {
		panic(errors.AssertionFailedf("ktree: use of an uninitialized position"))
	}
	if it.i == nilNode {
		panic(errors.AssertionFailedf("ktree: use of a nil position"))
	}
	if n := it.s.at(it.i); !n.live || n.gen != it.gen {
		panic(errors.AssertionFailedf("ktree: use of stale position %s", it))
	}
	return it.i
}

// node returns the node of a position that must hold a value.
func (it Iterator[T]) node() *node[T] {
	i := it.index()
	if i == it.s.foot {
		panic(errors.AssertionFailedf("ktree: dereferencing the end position"))
	}
	return it.s.at(i)
}

// Valid returns true if the position refers to a live node holding a value,
// i.e. it is neither nil, nor the sentinel, nor stale.
func (it Iterator[T]) Valid() bool {
	if it.s == nil || it.i == nilNode || it.i == it.s.foot {
		return false
	}
	n := it.s.at(it.i)
	return n.live && n.gen == it.gen
}

// IsEnd returns true if the position is the tree's sentinel.
func (it Iterator[T]) IsEnd() bool {
	return it.s != nil && it.i != nilNode && it.i == it.s.foot
}

// Value returns the value of the node. It panics if the position does not
// hold a value.
func (it Iterator[T]) Value() T {
	return it.node().value
}

// Ref returns a pointer to the value of the node, which may be used to mutate
// the value in place. The pointer remains valid until the node is erased.
func (it Iterator[T]) Ref() *T {
	return &it.node().value
}

// SetValue replaces the value of the node.
func (it Iterator[T]) SetValue(v T) {
	it.node().value = v
}

// Equal returns true if both positions refer to the same node. It panics if
// the positions belong to different trees.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	if it.s != o.s && it.s != nil && o.s != nil {
		panic(errors.AssertionFailedf("ktree: comparing positions %s and %s from different trees", it, o))
	}
	return it.i == o.i && it.gen == o.gen
}

// Parent returns the position of the node's parent, or a nil position for the
// root.
func (it Iterator[T]) Parent() Iterator[T] {
	return it.s.pos(it.node().parent)
}

// Left returns the position of the node's left sibling, or a nil position if
// the node is the first of its siblings.
func (it Iterator[T]) Left() Iterator[T] {
	return it.s.pos(it.node().left)
}

// Right returns the position of the node's right sibling, or a nil position if
// the node is the last of its siblings. The right sibling of the root is the
// sentinel.
func (it Iterator[T]) Right() Iterator[T] {
	return it.s.pos(it.node().right)
}

// FirstChild returns the position of the node's first child, or a nil
// position if the node has no children.
func (it Iterator[T]) FirstChild() Iterator[T] {
	return it.s.pos(it.node().childBegin)
}

// LastChild returns the position of the node's last child, or a nil position
// if the node has no children.
func (it Iterator[T]) LastChild() Iterator[T] {
	return it.s.pos(it.node().childEnd)
}

// HasChildren returns true if the node has at least one child.
func (it Iterator[T]) HasChildren() bool {
	return it.node().hasChildren()
}

// Depth returns the number of ancestors of the node; the root has depth 0.
func (it Iterator[T]) Depth() int {
	it.node()
	return it.s.depth(it.i)
}

// IsParentOf returns true if the node is the immediate parent of o.
func (it Iterator[T]) IsParentOf(o Iterator[T]) bool {
	it.mustShareTree(o)
	return it.i != nilNode && o.s.at(o.index()).parent == it.index()
}

// IsLeftOf returns true if the node is the immediate left sibling of o.
func (it Iterator[T]) IsLeftOf(o Iterator[T]) bool {
	it.mustShareTree(o)
	return it.i != nilNode && o.s.at(o.index()).left == it.index()
}

// IsRightOf returns true if the node is the immediate right sibling of o.
func (it Iterator[T]) IsRightOf(o Iterator[T]) bool {
	it.mustShareTree(o)
	return it.i != nilNode && o.s.at(o.index()).right == it.index()
}

func (it Iterator[T]) mustShareTree(o Iterator[T]) {
	if it.s != o.s {
		panic(errors.AssertionFailedf("ktree: relating positions %s and %s from different trees", it, o))
	}
}

// DepthBetween returns the number of parent hops from n up to ancestor, or 0
// if ancestor is not a proper ancestor of n.
func DepthBetween[T any](n, ancestor Iterator[T]) int {
	n.mustShareTree(ancestor)
	target := ancestor.index()
	d := 0
	for p := n.node().parent; p != nilNode; p = n.s.at(p).parent {
		d++
		if p == target {
			return d
		}
	}
	return 0
}

// BreadthBetween returns the number of right-sibling steps from left to
// right, or 0 if right is not to the right of left among its siblings.
func BreadthBetween[T any](left, right Iterator[T]) int {
	left.mustShareTree(right)
	target := right.index()
	d := 0
	for r := left.s.at(left.index()).right; r != nilNode; r = left.s.at(r).right {
		d++
		if r == target {
			return d
		}
	}
	return 0
}

// DepthFirst returns a pre-order iterator positioned at the node.
func (it Iterator[T]) DepthFirst() DepthFirstIter[T] {
	return DepthFirstIter[T]{Iterator: it, dir: forward}
}

// ReverseDepthFirst returns a reverse pre-order iterator positioned at the
// node.
func (it Iterator[T]) ReverseDepthFirst() DepthFirstIter[T] {
	return DepthFirstIter[T]{Iterator: it, dir: backward}
}

// LevelOrder returns a level-order iterator that starts at the node.
func (it Iterator[T]) LevelOrder() LevelOrderIter[T] {
	return makeLevelOrderIter(it.s, it.index())
}

// SafeFormat implements redact.SafeFormatter.
func (it Iterator[T]) SafeFormat(w redact.SafePrinter, _ rune) {
	switch {
	case it.s == nil:
		w.Print(redact.SafeString("<uninitialized>"))
	case it.i == nilNode:
		w.Print(redact.SafeString("<nil>"))
	case it.i == it.s.foot:
		w.Print(redact.SafeString("<end>"))
	default:
		w.Printf("%s@%d", it.i, redact.Safe(it.gen))
	}
}

// String implements fmt.Stringer.
func (it Iterator[T]) String() string {
	return redact.StringWithoutMarkers(it)
}

type direction int8

const (
	forward  direction = 1
	backward direction = -1
)

// step moves one position in pre-order from i in the given direction.
//
// Forward: descend to the first child if there is one; otherwise climb until
// an ancestor-or-self has a right sibling and move there. The root's right
// sibling is the sentinel, so every climb from a value-holding node ends
// there; from the sentinel itself the climb runs out of parents and the
// position stays put.
//
// Backward: move to the left sibling and descend through last children as
// far as possible; without a left sibling move to the parent, which is nil
// past the root.
func (s *nodes[T]) step(i nodeIndex, dir direction) nodeIndex {
	n := s.at(i)
	if dir == forward {
		if n.childBegin != nilNode {
			return n.childBegin
		}
		for j := i; ; {
			m := s.at(j)
			if m.right != nilNode {
				return m.right
			}
			if m.parent == nilNode {
				return i
			}
			j = m.parent
		}
	}
	if n.left == nilNode {
		return n.parent
	}
	j := n.left
	for c := s.at(j).childEnd; c != nilNode; c = s.at(j).childEnd {
		j = c
	}
	return j
}

// DepthFirstIter walks a tree in pre-order (a node before its children,
// children left to right, a subtree before its right sibling) or in the exact
// reverse of that order. Both orders share one step function; a reverse
// iterator simply steps backward on Next and forward on Prev.
//
// A forward traversal is exhausted when the iterator reaches the sentinel
// (see Tree.End); a reverse traversal is exhausted when it reaches the nil
// position before the root (see Tree.REnd). In both cases Valid returns false.
//
//	for it := t.Begin(); it.Valid(); it.Next() {
//		fmt.Println(it.Value())
//	}
type DepthFirstIter[T any] struct {
	Iterator[T]
	dir direction
}

// Next advances the iterator in its traversal order.
func (it *DepthFirstIter[T]) Next() {
	it.move(it.dir)
}

// Prev moves the iterator one step against its traversal order.
func (it *DepthFirstIter[T]) Prev() {
	it.move(-it.dir)
}

func (it *DepthFirstIter[T]) move(dir direction) {
	// The nil position precedes the root.
	if it.s != nil && it.i == nilNode && dir == forward {
		it.Iterator = it.s.pos(it.s.root)
		return
	}
	it.Iterator = it.s.pos(it.s.step(it.index(), dir))
}

// Reversed reports whether the iterator walks in reverse pre-order.
func (it *DepthFirstIter[T]) Reversed() bool {
	return it.dir == backward
}

var levelQueuePool = fifo.MakeQueueBackingPool[nodeIndex]()

// LevelOrderIter walks a tree breadth-first: the top level first, then each
// following level left to right. It keeps a FIFO of the nodes it has visited;
// whenever the sibling chain at the current position runs out, it dequeues
// until it finds a node with children and descends to the first of them. The
// traversal is exhausted when the FIFO empties, at which point the iterator
// lands on the sentinel.
//
// A LevelOrderIter must not be copied by value once it has been advanced; use
// Clone to obtain an independent iterator. There is no Prev: recovering the
// FIFO state when moving backward would require re-deriving level membership.
type LevelOrderIter[T any] struct {
	Iterator[T]
	// foot is the sentinel of the tree, captured at construction.
	foot nodeIndex
	q    fifo.Queue[nodeIndex]
}

func makeLevelOrderIter[T any](s *nodes[T], start nodeIndex) LevelOrderIter[T] {
	it := LevelOrderIter[T]{
		Iterator: s.pos(start),
		foot:     s.foot,
		q:        fifo.MakeQueue(&levelQueuePool),
	}
	it.q.PushBack(start)
	return it
}

// Next advances the iterator to the next node in level order. Advancing an
// exhausted iterator is a no-op.
func (it *LevelOrderIter[T]) Next() {
	s := it.s
	n := s.at(it.index())
	// Stay on the current level while there are right siblings. A top-level
	// node's right sibling is the sentinel, which only ends the traversal
	// once the FIFO is drained.
	if n.right != nilNode && n.parent != nilNode {
		it.Iterator = s.pos(n.right)
		it.q.PushBack(n.right)
		return
	}
	for it.q.Len() > 0 {
		top := *it.q.PeekFront()
		it.q.PopFront()
		if c := s.at(top).childBegin; c != nilNode {
			it.Iterator = s.pos(c)
			it.q.PushBack(c)
			return
		}
	}
	it.Iterator = s.pos(it.foot)
}

// Clone returns an iterator with the same position and an independent copy
// of the FIFO state.
func (it *LevelOrderIter[T]) Clone() LevelOrderIter[T] {
	c := LevelOrderIter[T]{
		Iterator: it.Iterator,
		foot:     it.foot,
		q:        fifo.MakeQueue(&levelQueuePool),
	}
	// The queue only exposes its front, so rotate it once through, copying
	// every element.
	for n := it.q.Len(); n > 0; n-- {
		v := *it.q.PeekFront()
		it.q.PopFront()
		it.q.PushBack(v)
		c.q.PushBack(v)
	}
	return c
}

// Pending returns the number of nodes waiting in the FIFO.
func (it *LevelOrderIter[T]) Pending() int {
	return it.q.Len()
}
