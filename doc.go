// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package ktree provides an ordered k-ary tree container (package
// github.com/cockroachdb/ktree).
//
// A Tree holds values of any type in nodes that have an arbitrary number of
// ordered children. The caller decides where every value goes: it may set the
// root, insert siblings to the left or right of a node, prepend or append
// children, and erase whole subtrees. There is no balancing and no ordering by
// value.
//
// # Positions and iterators
//
// An Iterator is a position in a tree. Positions stay valid across insertions
// and across erasure of unrelated nodes; a position whose node has been erased
// is stale and panics when used. Three traversal orders are provided:
//
//   - DepthFirstIter in pre-order, returned by Tree.Begin and Tree.End;
//   - DepthFirstIter in reverse pre-order, returned by Tree.RBegin and
//     Tree.REnd;
//   - LevelOrderIter in breadth-first order, returned by Tree.LevelBegin and
//     Tree.LevelEnd.
//
// Tree.Preorder, Tree.ReversePreorder and Tree.LevelOrder expose the same
// orders as range-over-func sequences.
//
// # Memory
//
// Nodes live in an arena of fixed-size chunks owned by the tree. A node never
// moves once allocated, and its slot is recycled after the node is erased.
// Deep copies (Tree.Clone, Tree.CopyFrom), erasure and equality are all
// implemented without recursion, so trees of any depth are supported.
//
// # Misuse
//
// Violated preconditions are programming errors and panic with an assertion
// failure. Examples are dereferencing the end position and inserting a sibling
// of the root.
package ktree
