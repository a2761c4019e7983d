package checkpoint

import (
	"context"
	"encoding/binary"
	"fmt"
	"testing"
	"time"

	"coreflow/internal/checkpoint/memorystore"
)

func stateFor(counter uint64) []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint64(buf, counter)
	return buf
}

func counterOf(state []byte) uint64 {
	return binary.LittleEndian.Uint64(state)
}

func TestCheckpointer_ChainReconstruction(t *testing.T) {
	ctx := context.Background()
	inner := memorystore.New()
	cfg := DifferentialConfig{BaseInterval: 5, MaxChainLength: 20, MinDiffSize: 1}
	cp := New(inner, cfg, nil)

	const thread = "t1"
	parent := ""
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("cp-%d", i)
		err := cp.Save(ctx, Checkpoint{
			ID:        id,
			ThreadID:  thread,
			State:     stateFor(uint64(i)),
			Node:      "n",
			Timestamp: time.Now(),
			ParentID:  parent,
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
		parent = id
	}

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("cp-%d", i)
		ckpt, ok, err := cp.Load(ctx, id)
		if err != nil || !ok {
			t.Fatalf("load %s: ok=%v err=%v", id, ok, err)
		}
		if got := counterOf(ckpt.State); got != uint64(i) {
			t.Fatalf("load %s: counter = %d, want %d", id, got, i)
		}
	}

	latest, ok, err := cp.GetLatest(ctx, thread)
	if err != nil || !ok {
		t.Fatalf("get latest: ok=%v err=%v", ok, err)
	}
	if got := counterOf(latest.State); got != 9 {
		t.Fatalf("get latest counter = %d, want 9", got)
	}
}

func TestCheckpointer_ChainBoundExceeded(t *testing.T) {
	// Normal Save() traffic always diffs against the thread's last full
	// base, so chains never naturally exceed depth 1. Exercise the cap
	// itself by injecting a synthetic chain of cached diffs directly, the
	// way a future reconstruction strategy that chains diff-against-diff
	// would produce one.
	ctx := context.Background()
	inner := memorystore.New()
	cfg := DifferentialConfig{BaseInterval: 10, MaxChainLength: 2, MinDiffSize: 1}
	cp := New(inner, cfg, nil)

	base := Checkpoint{ID: "base", ThreadID: "t", State: stateFor(0)}
	if err := inner.Save(ctx, base); err != nil {
		t.Fatal(err)
	}
	cp.setEntry("base", differentialEntry{kind: entryFull, full: base})

	prev := "base"
	prevState := base.State
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("d-%d", i)
		newState := stateFor(uint64(i))
		diff, ok := CreateDiff(prevState, newState, 1)
		if !ok {
			t.Fatalf("expected a diff at step %d", i)
		}
		cp.setEntry(id, differentialEntry{
			kind: entryDiff,
			meta: Metadata{ID: id, ThreadID: "t"},
			diff: CheckpointDiff{BaseID: prev, Diff: diff.Data, OriginalSize: diff.OriginalSize, NewSize: diff.NewSize},
		})
		prev = id
		prevState = newState
	}

	_, _, err := cp.Load(ctx, "d-5")
	if err == nil {
		t.Fatal("expected integrity error for a chain deeper than MaxChainLength")
	}
}

func TestCheckpointer_DeleteThread(t *testing.T) {
	ctx := context.Background()
	inner := memorystore.New()
	cp := New(inner, DefaultDifferentialConfig(), nil)

	if err := cp.Save(ctx, Checkpoint{ID: "a", ThreadID: "t", State: stateFor(1)}); err != nil {
		t.Fatal(err)
	}
	if err := cp.DeleteThread(ctx, "t"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cp.Load(ctx, "a"); ok {
		t.Fatal("expected checkpoint to be gone after DeleteThread")
	}
}

func TestNewCheckpointID_ProducesDistinctIDs(t *testing.T) {
	a := NewCheckpointID()
	b := NewCheckpointID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Fatal("expected distinct ids across calls")
	}
}
