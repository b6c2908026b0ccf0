// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package testutils contains helpers shared by the ktree tests.
package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a logger that writes to a testing.TB.
type Logger struct {
	T testing.TB
}

// Infof implements base.Logger.
func (l Logger) Infof(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Logf(format, args...)
}

// Errorf implements base.Logger.
func (l Logger) Errorf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Logf(format, args...)
}

// Fatalf implements base.Logger. Invariant violations surface as test
// failures rather than process exits.
func (l Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// RecordingLogger captures log lines so that tests can assert on them.
type RecordingLogger struct {
	mu    sync.Mutex
	lines []string
}

// Infof implements base.Logger.
func (r *RecordingLogger) Infof(format string, args ...interface{}) {
	r.record("info", format, args...)
}

// Errorf implements base.Logger.
func (r *RecordingLogger) Errorf(format string, args ...interface{}) {
	r.record("error", format, args...)
}

// Fatalf implements base.Logger. It records the message and panics, so a
// test can observe the failure with require.Panics.
func (r *RecordingLogger) Fatalf(format string, args ...interface{}) {
	r.record("fatal", format, args...)
	panic(fmt.Sprintf(format, args...))
}

func (r *RecordingLogger) record(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
}

// String returns all recorded lines, one per line.
func (r *RecordingLogger) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}
