// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	a := buildExample(t)
	b := buildExample(t)
	require.True(t, Equal(a, b))
	require.True(t, Equal(a, a))

	// A different value.
	find(t, b, 4).SetValue(40)
	require.False(t, Equal(a, b))
	find(t, b, 40).SetValue(4)
	require.True(t, Equal(a, b))

	// An extra leaf.
	leaf := b.AppendChild(find(t, b, 7), 8)
	require.False(t, Equal(a, b))
	require.False(t, Equal(b, a))
	b.Erase(leaf)
	require.True(t, Equal(a, b))

	// Same pre-order values, different shape: 3 as a child of 6 instead of
	// its sibling.
	c := New[int](testOptions(t))
	root := c.SetRoot(0)
	c.AppendChild(root, 1)
	two := c.AppendChild(root, 2)
	c.AppendChild(c.AppendChild(two, 6), 3)
	c.AppendChild(two, 4)
	c.AppendChild(root, 5)
	c.AppendChild(root, 7)
	require.Equal(t, preorder(a), preorder(c))
	require.False(t, Equal(a, c))

	require.True(t, Equal(New[int](nil), New[int](nil)))
	require.False(t, Equal(New[int](nil), a))
}

// TestEqualClimbHeight covers trees whose consecutive pre-order pairs agree on
// every immediate relation and differ only in how far the walk climbs before
// moving right.
func TestEqualClimbHeight(t *testing.T) {
	// r{a{b{c}} d}
	x := NewWithRoot("r", testOptions(t))
	a := x.AppendChild(x.Root(), "a")
	x.AppendChild(x.AppendChild(a, "b"), "c")
	x.AppendChild(x.Root(), "d")

	// r{a{b{c} d}}
	y := NewWithRoot("r", testOptions(t))
	a = y.AppendChild(y.Root(), "a")
	y.AppendChild(y.AppendChild(a, "b"), "c")
	y.AppendChild(a, "d")

	require.Equal(t, preorder(x), preorder(y))
	require.False(t, Equal(x, y))
	require.True(t, Equal(x, x.Clone()))
	require.True(t, Equal(y, y.Clone()))
}

func TestEqualFunc(t *testing.T) {
	a := NewWithRoot("Root", testOptions(t))
	a.AppendChild(a.Root(), "Child")
	b := NewWithRoot("root", testOptions(t))
	b.AppendChild(b.Root(), "child")

	require.False(t, Equal(a, b))
	require.True(t, a.EqualFunc(b, strings.EqualFold))

	// Values of a non-comparable type.
	c := NewWithRoot([]int{1, 2}, testOptions(t))
	d := NewWithRoot([]int{1, 2}, testOptions(t))
	require.True(t, c.EqualFunc(d, slices.Equal[[]int]))
	d.Root().SetValue([]int{1})
	require.False(t, c.EqualFunc(d, slices.Equal[[]int]))
}
