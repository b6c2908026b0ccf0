// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ktree

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ktree/internal/base"
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger

// NoopLogger does not log anything.
type NoopLogger = base.NoopLogger

const (
	defaultChunkSize = 64
	maxChunkSize     = 1 << 20
)

// Options holds the optional parameters for configuring a Tree. These options
// apply to the tree they are passed to, to its clones, and to the trees it is
// moved into.
type Options struct {
	// Logger used to report invariant violations and arena growth. If nil,
	// DefaultLogger is used.
	Logger Logger

	// ChunkSize is the number of nodes allocated together whenever the node
	// arena needs to grow. Nodes never move once allocated, so pointers
	// returned by Iterator.Ref remain stable until the node is erased. The
	// value is rounded up to a power of two. The default is 64.
	ChunkSize int

	// VerifyInvariants, if true, verifies the consistency of every node link
	// after every structural mutation and reports violations through
	// Logger.Fatalf. Verification is O(n) per mutation and is intended for
	// tests. Builds with the "invariants" or "race" tags always verify.
	VerifyInvariants bool

	// ArenaGrowthLogThreshold, if positive, logs an informational message once
	// the node arena reaches this many chunks, and again every time it doubles
	// in size after that.
	ArenaGrowthLogThreshold int
}

// Clone creates a shallow-copy of the supplied options.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	n := *o
	return &n
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified.
func (o *Options) EnsureDefaults() {
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.ChunkSize&(o.ChunkSize-1) != 0 && o.ChunkSize < maxChunkSize {
		o.ChunkSize = 1 << bits.Len(uint(o.ChunkSize))
	}
}

// Validate verifies that the options are mutually consistent. It presumes
// EnsureDefaults has been called.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.ChunkSize > maxChunkSize {
		fmt.Fprintf(&buf, "ChunkSize (%d) must be <= %d\n", o.ChunkSize, maxChunkSize)
	}
	if o.ArenaGrowthLogThreshold < 0 {
		fmt.Fprintf(&buf, "ArenaGrowthLogThreshold (%d) must be >= 0\n", o.ArenaGrowthLogThreshold)
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

// String implements fmt.Stringer.
func (o *Options) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  chunk_size=%d\n", o.ChunkSize)
	fmt.Fprintf(&buf, "  verify_invariants=%t\n", o.VerifyInvariants)
	fmt.Fprintf(&buf, "  arena_growth_log_threshold=%d\n", o.ArenaGrowthLogThreshold)
	return buf.String()
}

// chunkShift returns log2(ChunkSize).
func (o *Options) chunkShift() uint {
	return uint(bits.TrailingZeros(uint(o.ChunkSize)))
}
