// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ktree/internal/invariants"
	"github.com/cockroachdb/redact"
)

// nodeIndex addresses a slot in a node arena. Index 0 is never allocated and
// serves as the nil reference, in the same way arenaskl reserves offset 0.
type nodeIndex int32

const nilNode nodeIndex = 0

func (i nodeIndex) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("n%d", redact.Safe(int32(i)))
}

// node is a single element of a tree. The four link families (parent,
// siblings, child range) are indices into the same arena.
type node[T any] struct {
	parent     nodeIndex
	left       nodeIndex
	right      nodeIndex
	childBegin nodeIndex
	childEnd   nodeIndex
	// gen is bumped every time the slot is released, which lets positions
	// captured before the release detect that they are stale.
	gen   uint32
	live  bool
	value T
}

func (n *node[T]) hasChildren() bool {
	return n.childBegin != nilNode
}

// nodes is the arena that owns every node of a tree. Nodes are allocated in
// fixed-size chunks so that their addresses never change; released slots are
// recycled through a free list.
type nodes[T any] struct {
	opts   *Options
	chunks [][]node[T]
	shift  uint
	mask   nodeIndex
	// next is the lowest slot that has never been handed out.
	next nodeIndex
	free []nodeIndex

	// root is the first top-level node and foot is the sentinel that follows
	// it. root == foot iff the tree is empty.
	root nodeIndex
	foot nodeIndex

	allocs uint64
	frees  uint64
	// growthLogAt is the chunk count at which the next arena growth message
	// is logged.
	growthLogAt int
}

func newNodes[T any](opts *Options) *nodes[T] {
	s := &nodes[T]{
		opts:        opts,
		shift:       opts.chunkShift(),
		mask:        nodeIndex(opts.ChunkSize - 1),
		next:        1,
		growthLogAt: opts.ArenaGrowthLogThreshold,
	}
	var zero T
	s.foot = s.alloc(zero)
	s.root = s.foot
	return s
}

// at returns the node stored in slot i. The returned pointer is stable for the
// lifetime of the arena.
func (s *nodes[T]) at(i nodeIndex) *node[T] {
	invariants.CheckIndex(i, s.next)
	return &s.chunks[i>>s.shift][i&s.mask]
}

// alloc returns a fresh, unlinked node holding v.
func (s *nodes[T]) alloc(v T) nodeIndex {
	var i nodeIndex
	if n := len(s.free); n > 0 {
		i = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if s.next == math.MaxInt32 {
			panic(errors.AssertionFailedf("ktree: node arena exhausted (%d nodes)", redact.Safe(int32(s.next))))
		}
		if int(s.next) >= len(s.chunks)<<s.shift {
			s.grow()
		}
		i = s.next
		s.next++
	}
	n := s.at(i)
	if invariants.Enabled && n.live {
		panic(errors.AssertionFailedf("allocating live slot %s", i))
	}
	n.live = true
	n.value = v
	s.allocs++
	return i
}

func (s *nodes[T]) grow() {
	s.chunks = append(s.chunks, make([]node[T], 1<<s.shift))
	if s.growthLogAt > 0 && len(s.chunks) >= s.growthLogAt {
		s.opts.Logger.Infof("ktree: node arena grew to %d chunks (%d nodes, %d live)",
			len(s.chunks), len(s.chunks)<<s.shift, s.allocs-s.frees)
		s.growthLogAt *= 2
	}
}

// release returns slot i to the free list. The node's links and value are
// cleared so that the arena does not retain references on behalf of the
// caller.
func (s *nodes[T]) release(i nodeIndex) {
	n := s.at(i)
	if invariants.Enabled && !n.live {
		panic(errors.AssertionFailedf("double release of %s", i))
	}
	*n = node[T]{gen: n.gen + 1}
	s.free = append(s.free, i)
	s.frees++
}

// releaseChildren releases every descendant of parent, children before their
// parents, without recursion. The parent's child range is left cleared.
func (s *nodes[T]) releaseChildren(parent nodeIndex) {
	p := s.at(parent)
	i := p.childBegin
	p.childBegin, p.childEnd = nilNode, nilNode
	for i != nilNode {
		n := s.at(i)
		if n.childBegin != nilNode {
			// Detach the child range before descending so that, once the
			// children are gone, climbing back up finds a leaf.
			c := n.childBegin
			n.childBegin, n.childEnd = nilNode, nilNode
			i = c
			continue
		}
		right, up := n.right, n.parent
		s.release(i)
		switch {
		case right != nilNode:
			i = right
		case up == parent:
			i = nilNode
		default:
			i = up
		}
	}
}

// live returns the number of allocated slots, including the sentinel.
func (s *nodes[T]) live() uint64 {
	return invariants.SafeSub(s.allocs, s.frees)
}

func (s *nodes[T]) nodeSize() uint64 {
	return uint64(unsafe.Sizeof(node[T]{}))
}

// depth returns the number of parent hops from i to a top-level node.
func (s *nodes[T]) depth(i nodeIndex) int {
	d := 0
	for p := s.at(i).parent; p != nilNode; p = s.at(p).parent {
		d++
	}
	return d
}
