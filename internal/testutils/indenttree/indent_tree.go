// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package indenttree parses tree literals written with indentation into a
// flat pre-order listing of (depth, value) entries; see Parse.
package indenttree

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Entry is a single line of a tree literal.
type Entry struct {
	// Depth is the number of ancestors of the entry; top-level lines have
	// depth 0.
	Depth int
	// Value is the line without its indentation.
	Value string
}

// Parse a multi-line input string into a pre-order listing of entries. For
// example:
//
//	a
//	 a1
//	  a11
//	 a2
//	b
//	 b1
//
// yields a@0, a1@1, a11@2, a2@1, b@0, b1@1.
//
// The indentation width is arbitrary but it must be consistent across lines:
// every distinct width corresponds to exactly one depth. Tabs cannot be used
// for indentation and a line can be at most one level deeper than the line
// before it. For example, the following are not valid:
//
//	a
//	 a1
//	b
//	  b1
//
//	a
//	  a1
//	    a11
//	b
//	    b12
func Parse(input string) ([]Entry, error) {
	input = strings.TrimSuffix(input, "\n")
	if input == "" {
		return nil, errors.Errorf("empty input")
	}
	lines := strings.Split(input, "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		w := 0
		for strings.HasPrefix(line[w:], " ") {
			w++
		}
		if len(line) == w {
			return nil, errors.Errorf("empty line in input:\n%s", input)
		}
		if line[w] == '\t' {
			return nil, errors.Errorf("tab indentation in input:\n%s", input)
		}
		widths[i] = w
	}
	levels := slices.Clone(widths)
	slices.Sort(levels)
	levels = slices.Compact(levels)

	entries := make([]Entry, len(lines))
	// stack holds the indentation width of every open ancestor of the
	// current line.
	var stack []int
	for i, line := range lines {
		w := widths[i]
		for len(stack) > 0 && stack[len(stack)-1] >= w {
			stack = stack[:len(stack)-1]
		}
		depth, _ := slices.BinarySearch(levels, w)
		if depth != len(stack) {
			return nil, errors.Errorf("inconsistent indentation in input:\n%s", input)
		}
		stack = append(stack, w)
		entries[i] = Entry{Depth: depth, Value: line[w:]}
	}
	return entries, nil
}

// Format renders entries back into an indented literal, using two spaces per
// level. It is the inverse of Parse for canonically indented input.
func Format(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.Repeat("  ", e.Depth))
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Roots returns the number of top-level entries.
func Roots(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Depth == 0 {
			n++
		}
	}
	return n
}
