// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ktree/internal/testutils/indenttree"
)

// buildFromLiteral builds a tree from an indented literal with a single
// top-level line.
func buildFromLiteral(t *testing.T, input string) (*Tree[string], error) {
	entries, err := indenttree.Parse(input)
	if err != nil {
		return nil, err
	}
	if n := indenttree.Roots(entries); n != 1 {
		return nil, errors.Newf("a tree has exactly one root; literal has %d", n)
	}
	tr := New[string](testOptions(t))
	// parents[d] is the most recent node at depth d.
	parents := []Iterator[string]{tr.SetRoot(entries[0].Value)}
	for _, e := range entries[1:] {
		parents = append(parents[:e.Depth], tr.AppendChild(parents[e.Depth-1], e.Value))
	}
	return tr, nil
}

// printTree renders a tree as an indented literal, the inverse of
// buildFromLiteral.
func printTree(tr *Tree[string]) string {
	if tr.Empty() {
		return "<empty>\n"
	}
	var entries []indenttree.Entry
	for it := tr.Begin(); it.Valid(); it.Next() {
		entries = append(entries, indenttree.Entry{Depth: it.Depth(), Value: it.Value()})
	}
	return indenttree.Format(entries)
}

func findValue(tr *Tree[string], v string) (Iterator[string], error) {
	for it := tr.Begin(); it.Valid(); it.Next() {
		if it.Value() == v {
			return it.Iterator, nil
		}
	}
	return Iterator[string]{}, errors.Newf("no node holds %q", v)
}

func collect(it interface {
	Valid() bool
	Value() string
	Next()
}) string {
	var vals []string
	for ; it.Valid(); it.Next() {
		vals = append(vals, it.Value())
	}
	if len(vals) == 0 {
		return "<none>\n"
	}
	return strings.Join(vals, " ") + "\n"
}

// catchPanic runs fn and converts an assertion failure into an error.
func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

func TestTreeDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata/tree", func(t *testing.T, path string) {
		trees := map[string]*Tree[string]{}
		get := func(d *datadriven.TestData) *Tree[string] {
			name := "t"
			d.MaybeScanArgs(t, "tree", &name)
			tr, ok := trees[name]
			if !ok {
				d.Fatalf(t, "unknown tree %q", name)
			}
			return tr
		}

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "build":
				name := "t"
				d.MaybeScanArgs(t, "tree", &name)
				tr, err := buildFromLiteral(t, d.Input)
				if err != nil {
					return fmt.Sprintf("error: %s\n", strings.SplitN(err.Error(), "\n", 2)[0])
				}
				trees[name] = tr
				return printTree(tr)

			case "new":
				name := "t"
				d.MaybeScanArgs(t, "tree", &name)
				trees[name] = New[string](testOptions(t))
				return printTree(trees[name])

			case "print":
				return printTree(get(d))

			case "size":
				tr := get(d)
				return fmt.Sprintf("size=%d empty=%t\n", tr.Size(), tr.Empty())

			case "preorder", "reverse-preorder", "level-order":
				tr := get(d)
				var from string
				d.MaybeScanArgs(t, "from", &from)
				start := tr.Root()
				if from != "" {
					it, err := findValue(tr, from)
					if err != nil {
						return fmt.Sprintf("error: %s\n", err)
					}
					start = it
				}
				switch d.Cmd {
				case "preorder":
					it := start.DepthFirst()
					if from == "" {
						it = tr.Begin()
					}
					return collect(&it)
				case "reverse-preorder":
					it := start.ReverseDepthFirst()
					if from == "" {
						it = tr.RBegin()
					}
					return collect(&it)
				default:
					if start.IsEnd() {
						return "<none>\n"
					}
					it := start.LevelOrder()
					return collect(&it)
				}

			case "mutate":
				tr := get(d)
				var out strings.Builder
				for _, line := range crstrings.Lines(d.Input) {
					fields := strings.Fields(line)
					if err := catchPanic(func() { mutate(&out, tr, fields) }); err != nil {
						fmt.Fprintf(&out, "%s: %s\n", line, strings.SplitN(err.Error(), "\n", 2)[0])
					}
				}
				out.WriteString(printTree(tr))
				return out.String()

			case "clone":
				var from, to string
				d.ScanArgs(t, "from", &from)
				d.ScanArgs(t, "to", &to)
				src := trees[from]
				if dst, ok := trees[to]; ok {
					dst.CopyFrom(src)
				} else {
					trees[to] = src.Clone()
				}
				return printTree(trees[to])

			case "move":
				var from, to string
				d.ScanArgs(t, "from", &from)
				d.ScanArgs(t, "to", &to)
				if dst, ok := trees[to]; ok {
					dst.MoveFrom(trees[from])
				} else {
					trees[to] = trees[from].Move()
				}
				return fmt.Sprintf("%s:\n%s%s:\n%s", from, printTree(trees[from]), to, printTree(trees[to]))

			case "equal":
				var a, b string
				d.ScanArgs(t, "a", &a)
				d.ScanArgs(t, "b", &b)
				return fmt.Sprintf("%t\n", Equal(trees[a], trees[b]))

			case "relations":
				tr := get(d)
				var a, b string
				d.ScanArgs(t, "a", &a)
				d.ScanArgs(t, "b", &b)
				x, err := findValue(tr, a)
				if err != nil {
					return fmt.Sprintf("error: %s\n", err)
				}
				y, err := findValue(tr, b)
				if err != nil {
					return fmt.Sprintf("error: %s\n", err)
				}
				return fmt.Sprintf("parent-of=%t left-of=%t right-of=%t depth-between=%d breadth-between=%d\n",
					x.IsParentOf(y), x.IsLeftOf(y), x.IsRightOf(y), DepthBetween(y, x), BreadthBetween(x, y))

			default:
				d.Fatalf(t, "unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// mutate applies a single mutation of the form "<op> <anchor> [<value>]".
// An anchor of "-" refers to the end position.
func mutate(out *strings.Builder, tr *Tree[string], fields []string) {
	anchor := func() Iterator[string] {
		if fields[1] == "-" {
			return tr.End().Iterator
		}
		it, err := findValue(tr, fields[1])
		if err != nil {
			panic(err)
		}
		return it
	}
	switch fields[0] {
	case "set-root":
		tr.SetRoot(fields[1])
	case "append-child":
		tr.AppendChild(anchor(), fields[2])
	case "prepend-child":
		tr.PrependChild(anchor(), fields[2])
	case "insert-left":
		tr.InsertLeft(anchor(), fields[2])
	case "insert-right":
		tr.InsertRight(anchor(), fields[2])
	case "erase":
		next := tr.Erase(anchor())
		if next.IsEnd() {
			fmt.Fprintf(out, "erase %s: returned <end>\n", fields[1])
		} else {
			fmt.Fprintf(out, "erase %s: returned %s\n", fields[1], next.Value())
		}
	case "clear":
		tr.Clear()
	default:
		panic(fmt.Sprintf("unknown op %q", fields[0]))
	}
}
