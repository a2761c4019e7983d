// Package checkpoint implements a differential checkpoint store: periodic
// full bases plus positional binary diffs, wrapping an arbitrary inner
// store reached only through the narrow Store interface.
package checkpoint

import (
	"time"

	"github.com/google/uuid"
)

// NewCheckpointID generates a fresh checkpoint id for callers that don't
// already have a natural one (e.g. a graph-assigned node/step id).
func NewCheckpointID() string {
	return uuid.NewString()
}

// Checkpoint is a snapshot of opaque graph state at a named node within a
// thread. State is an opaque serialized payload; this package never
// interprets its contents.
type Checkpoint struct {
	ID        string
	ThreadID  string
	State     []byte
	Node      string
	Timestamp time.Time
	ParentID  string // empty means no parent
	Metadata  map[string]string
}

// Metadata is the subset of a Checkpoint exposed by List, independent of
// whether the entry is cached as a full base or a diff.
type Metadata struct {
	ID        string
	ThreadID  string
	Node      string
	Timestamp time.Time
	ParentID  string
	Metadata  map[string]string
}

// ThreadInfo summarizes a thread as returned by ListThreads.
type ThreadInfo struct {
	ThreadID  string
	SaveCount int
}

// CheckpointDiff is a positional binary delta of a Checkpoint's State
// against a named base checkpoint.
type CheckpointDiff struct {
	BaseID       string
	Diff         []byte
	OriginalSize int
	NewSize      int
}

// entryKind discriminates the two shapes an in-process DifferentialEntry
// can take.
type entryKind int

const (
	entryFull entryKind = iota
	entryDiff
)

// differentialEntry is the in-process cache representation of a saved
// checkpoint: either the full checkpoint, or metadata plus a diff against a
// named base. Metadata is always forwarded to the inner store regardless of
// which shape is cached here.
type differentialEntry struct {
	kind     entryKind
	full     Checkpoint
	meta     Metadata
	diff     CheckpointDiff
	parentID string
}
