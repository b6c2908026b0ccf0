// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

// Equal returns true if a and b have the same shape and hold equal values at
// corresponding positions.
func Equal[T comparable](a, b *Tree[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}

// EqualFunc returns true if t and o have the same shape and eq holds for the
// values at every pair of corresponding positions.
//
// Both trees are walked in pre-order in lockstep. Two pre-order sequences
// describe the same shape iff every pair of consecutive nodes is related in
// the same way in both trees: the second node is the first child of the
// first, or it is reached by climbing the same number of levels from the
// first and then moving to a right sibling.
func (t *Tree[T]) EqualFunc(o *Tree[T], eq func(a, b T) bool) bool {
	if t == o || t.s == o.s {
		return true
	}
	a, b := t.s, o.s
	i, j := a.root, b.root
	var pi, pj nodeIndex
	for i != a.foot && j != b.foot {
		if !eq(a.at(i).value, b.at(j).value) {
			return false
		}
		if pi != nilNode && a.relation(pi, i) != b.relation(pj, j) {
			return false
		}
		pi, pj = i, j
		i, j = a.step(i, forward), b.step(j, forward)
	}
	return i == a.foot && j == b.foot
}

// relation describes how cur follows prev in pre-order: -1 if cur is the first
// child of prev, otherwise the number of levels climbed from prev before
// moving to a right sibling (0 when cur is the right sibling of prev).
func (s *nodes[T]) relation(prev, cur nodeIndex) int {
	if s.at(cur).parent == prev && prev != nilNode {
		return -1
	}
	h := 0
	for k := prev; s.at(k).right == nilNode; k = s.at(k).parent {
		h++
	}
	return h
}
