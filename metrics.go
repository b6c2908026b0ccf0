// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/ktree/internal/invariants"
	"github.com/cockroachdb/redact"
)

// SlotCount is a number of node slots and the memory they occupy.
type SlotCount struct {
	Count uint64
	Bytes uint64
}

func makeSlotCount(n, nodeSize uint64) SlotCount {
	return SlotCount{Count: n, Bytes: n * nodeSize}
}

// String implements fmt.Stringer.
func (c SlotCount) String() string {
	return redact.StringWithoutMarkers(c)
}

// SafeFormat implements redact.SafeFormatter.
func (c SlotCount) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s (%s)", crhumanize.Count(c.Count, crhumanize.Compact),
		crhumanize.Bytes(c.Bytes, crhumanize.Compact, crhumanize.OmitI))
}

// Metrics describes the memory held by a tree's node arena.
type Metrics struct {
	// Values is the number of nodes holding a value.
	Values SlotCount
	// Free is the number of released slots waiting to be reused.
	Free SlotCount
	// Unused is the number of slots in allocated chunks that have never been
	// handed out.
	Unused SlotCount
	// Chunks is the number of chunks in the arena.
	Chunks int
	// Allocs and Frees count node allocations and releases over the lifetime
	// of the arena, including the sentinel.
	Allocs uint64
	Frees  uint64
}

// Metrics returns a snapshot of the tree's memory usage.
func (t *Tree[T]) Metrics() Metrics {
	s := t.s
	sz := s.nodeSize()
	capacity := uint64(len(s.chunks)) << s.shift
	return Metrics{
		// The sentinel is live but holds no value.
		Values: makeSlotCount(invariants.SafeSub(s.live(), 1), sz),
		Free:   makeSlotCount(uint64(len(s.free)), sz),
		// Slot 0 is reserved as the nil reference.
		Unused: makeSlotCount(invariants.SafeSub(capacity, uint64(s.next)), sz),
		Chunks: len(s.chunks),
		Allocs: s.allocs,
		Frees:  s.frees,
	}
}

// String implements fmt.Stringer.
func (m Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("values: %s\n", m.Values)
	w.Printf("free: %s\n", m.Free)
	w.Printf("unused: %s\n", m.Unused)
	w.Printf("chunks: %d allocs: %d frees: %d\n",
		redact.Safe(m.Chunks), redact.Safe(m.Allocs), redact.Safe(m.Frees))
}
