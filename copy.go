// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import "github.com/cockroachdb/errors"

// Clone returns a deep copy of the tree. Values are copied by assignment. The
// copy is built without recursion, so arbitrarily deep trees can be cloned.
func (t *Tree[T]) Clone() *Tree[T] {
	c := &Tree[T]{opts: t.opts, s: newNodes[T](t.opts)}
	c.copyFrom(t.s)
	return c
}

// CopyFrom replaces the contents of t with a deep copy of src. Copying a tree
// into itself is a no-op. Positions into the previous contents of t become
// stale.
func (t *Tree[T]) CopyFrom(src *Tree[T]) {
	if t == src || t.s == src.s {
		return
	}
	t.Clear()
	t.copyFrom(src.s)
}

// copyFrom rebuilds the source tree into the empty tree t.
//
// The source is walked in reverse pre-order, so every node is visited after
// all of its descendants and after its right siblings. Copied nodes wait on a
// stack together with their depth. When a node at depth d is copied, its
// children are exactly the run of depth d+1 entries on top of the stack, with
// the first child on top; they are popped, linked as siblings and adopted.
// Whatever remains below belongs to right siblings of the node or of its
// ancestors.
//
// Depth is maintained incrementally: moving to a left sibling keeps it, each
// descent through a last child adds one and moving to the parent subtracts
// one.
func (t *Tree[T]) copyFrom(src *nodes[T]) {
	if src.root == src.foot {
		return
	}
	dst := t.s
	i := src.step(src.foot, backward)
	depth := src.depth(i)

	var stack copyStack
	for i != nilNode {
		n := src.at(i)
		j := dst.alloc(n.value)
		m := dst.at(j)

		last := nilNode
		for stack.len() > 0 && stack.peek().depth == depth+1 {
			c := stack.pop().n
			cn := dst.at(c)
			cn.parent = j
			if last == nilNode {
				m.childBegin = c
			} else {
				cn.left = last
				dst.at(last).right = c
			}
			last = c
		}
		m.childEnd = last
		if stack.len() > 0 && stack.peek().depth > depth+1 {
			panic(errors.AssertionFailedf("ktree: copy: orphaned node at depth %d above depth %d",
				stack.peek().depth, depth))
		}
		stack.push(copyFrame{n: j, depth: depth})

		// Step backward in pre-order, tracking the depth.
		if n.left == nilNode {
			i = n.parent
			depth--
			continue
		}
		i = n.left
		for c := src.at(i).childEnd; c != nilNode; c = src.at(i).childEnd {
			i = c
			depth++
		}
	}

	if stack.len() != 1 || stack.peek().depth != 0 {
		panic(errors.AssertionFailedf("ktree: copy: %d frames left on the stack", stack.len()))
	}
	r := stack.pop().n
	dst.at(r).right = dst.foot
	dst.at(dst.foot).left = r
	dst.root = r
	t.maybeVerify()
}

// copyStack is a stack of (node, depth) frames. Short stacks live in an inline
// array; once that overflows the frames move to a heap-allocated slice.
type copyStack struct {
	a    copyStackArr
	aLen int16 // -1 when using s
	s    []copyFrame
}

type copyStackArr [8]copyFrame

type copyFrame struct {
	n     nodeIndex
	depth int
}

func (cs *copyStack) push(f copyFrame) {
	if cs.aLen == -1 {
		cs.s = append(cs.s, f)
	} else if int(cs.aLen) == len(cs.a) {
		cs.s = make([]copyFrame, int(cs.aLen)+1, 2*int(cs.aLen))
		copy(cs.s, cs.a[:])
		cs.s[int(cs.aLen)] = f
		cs.aLen = -1
	} else {
		cs.a[cs.aLen] = f
		cs.aLen++
	}
}

func (cs *copyStack) pop() copyFrame {
	if cs.aLen == -1 {
		f := cs.s[len(cs.s)-1]
		cs.s = cs.s[:len(cs.s)-1]
		return f
	}
	cs.aLen--
	return cs.a[cs.aLen]
}

func (cs *copyStack) peek() copyFrame {
	if cs.aLen == -1 {
		return cs.s[len(cs.s)-1]
	}
	return cs.a[cs.aLen-1]
}

func (cs *copyStack) len() int {
	if cs.aLen == -1 {
		return len(cs.s)
	}
	return int(cs.aLen)
}
