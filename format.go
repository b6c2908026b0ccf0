// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// String renders the tree with one value per line, children indented below
// their parent:
//
//	a
//	├── b
//	│   └── c
//	└── d
func (t *Tree[T]) String() string {
	return t.FormatFunc(func(v T) string { return fmt.Sprint(v) })
}

// FormatFunc is like String but renders each value with fn.
func (t *Tree[T]) FormatFunc(fn func(T) string) string {
	s := t.s
	if s.root == s.foot {
		return "<empty>\n"
	}
	type frame struct {
		next   nodeIndex
		branch treeprint.Tree
	}
	root := treeprint.NewWithRoot(fn(s.at(s.root).value))
	stack := []frame{{next: s.at(s.root).childBegin, branch: root}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next == nilNode {
			stack = stack[:len(stack)-1]
			continue
		}
		n := s.at(f.next)
		f.next = n.right
		if !n.hasChildren() {
			f.branch.AddNode(fn(n.value))
			continue
		}
		stack = append(stack, frame{next: n.childBegin, branch: f.branch.AddBranch(fn(n.value))})
	}
	return root.String()
}
