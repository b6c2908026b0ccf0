// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"github.com/cockroachdb/ktree/internal/base"
	"github.com/cockroachdb/swiss"
)

// ErrCorruption marks the errors returned by Tree.Check.
var ErrCorruption = base.ErrCorruption

// IsCorruptionError returns true if err was returned by Tree.Check.
func IsCorruptionError(err error) bool {
	return base.IsCorruptionError(err)
}

// Check verifies the structural consistency of the tree and returns an error
// marked as a corruption error (see IsCorruptionError) describing the first
// violation found. It checks that:
//
//   - the root has no parent and no left sibling, and its right sibling is the
//     sentinel, whose left sibling is the root;
//   - every child's parent link names the node whose child range holds it;
//   - sibling links are symmetric, and each child range starts at a node
//     without a left sibling and ends at a node without a right sibling;
//   - no node is reachable twice, and every allocated node is reachable.
//
// Check is O(n). It is run after every mutation when Options.VerifyInvariants
// is set or the binary is built with invariants.
func (t *Tree[T]) Check() error {
	s := t.s
	foot := s.at(s.foot)
	if !foot.live || foot.parent != nilNode || foot.right != nilNode || foot.childBegin != nilNode {
		return base.CorruptionErrorf("ktree: sentinel %s has unexpected links", s.foot)
	}
	if s.root == s.foot {
		if foot.left != nilNode {
			return base.CorruptionErrorf("ktree: empty tree sentinel has left sibling %s", foot.left)
		}
		if live := s.live(); live != 1 {
			return base.CorruptionErrorf("ktree: empty tree has %d live nodes", live)
		}
		return nil
	}
	if foot.left != s.root {
		return base.CorruptionErrorf("ktree: sentinel left sibling %s is not the root %s", foot.left, s.root)
	}
	root := s.at(s.root)
	if !root.live {
		return base.CorruptionErrorf("ktree: root %s is not live", s.root)
	}
	if root.parent != nilNode || root.left != nilNode || root.right != s.foot {
		return base.CorruptionErrorf("ktree: root %s has unexpected links (parent %s, left %s, right %s)",
			s.root, root.parent, root.left, root.right)
	}

	var visited swiss.Map[nodeIndex, struct{}]
	visited.Init(int(s.live()))
	visited.Put(s.root, struct{}{})
	pending := []nodeIndex{s.root}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		pn := s.at(p)
		if (pn.childBegin == nilNode) != (pn.childEnd == nilNode) {
			return base.CorruptionErrorf("ktree: %s has child range [%s, %s]", p, pn.childBegin, pn.childEnd)
		}
		if pn.childBegin == nilNode {
			continue
		}
		if l := s.at(pn.childBegin).left; l != nilNode {
			return base.CorruptionErrorf("ktree: first child %s of %s has left sibling %s", pn.childBegin, p, l)
		}
		prev := nilNode
		for c := pn.childBegin; c != nilNode; c = s.at(c).right {
			if c == s.foot {
				return base.CorruptionErrorf("ktree: sentinel is a child of %s", p)
			}
			if _, ok := visited.Get(c); ok {
				return base.CorruptionErrorf("ktree: %s is reachable twice", c)
			}
			visited.Put(c, struct{}{})
			cn := s.at(c)
			if !cn.live {
				return base.CorruptionErrorf("ktree: %s is reachable but not live", c)
			}
			if cn.parent != p {
				return base.CorruptionErrorf("ktree: %s is a child of %s but has parent %s", c, p, cn.parent)
			}
			if cn.left != prev {
				return base.CorruptionErrorf("ktree: %s has left sibling %s, expected %s", c, cn.left, prev)
			}
			pending = append(pending, c)
			prev = c
		}
		if prev != pn.childEnd {
			return base.CorruptionErrorf("ktree: last child of %s is %s, expected %s", p, prev, pn.childEnd)
		}
	}
	if reachable, live := uint64(visited.Len())+1, s.live(); reachable != live {
		return base.CorruptionErrorf("ktree: %d nodes reachable, %d live", reachable, live)
	}
	return nil
}
