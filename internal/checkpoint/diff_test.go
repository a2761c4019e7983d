package checkpoint

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestCreateDiff_BelowMinSize(t *testing.T) {
	base := make([]byte, 100)
	target := make([]byte, 100)
	target[10] = 1
	if _, ok := CreateDiff(base, target, DefaultMinDiffSize); ok {
		t.Fatal("expected no diff below min size")
	}
}

func TestDiff_MostlyZeroState(t *testing.T) {
	base := make([]byte, 2000)
	target := make([]byte, 2000)
	copy(target, base)
	for i := 100; i < 200; i++ {
		target[i] = 255
	}

	diff, ok := CreateDiff(base, target, DefaultMinDiffSize)
	if !ok {
		t.Fatal("expected a diff to be produced")
	}
	if len(diff.Data) >= len(target) {
		t.Fatalf("diff not smaller than target: %d >= %d", len(diff.Data), len(target))
	}
	if got := binary.LittleEndian.Uint64(diff.Data[:8]); got != 2000 {
		t.Fatalf("header length = %d, want 2000", got)
	}

	got, err := ApplyDiff(base, diff, 2000)
	if err != nil {
		t.Fatalf("ApplyDiff: %v", err)
	}
	if !bytes.Equal(got, target) {
		t.Fatal("roundtrip mismatch")
	}
}

func TestDiff_GrowingState(t *testing.T) {
	base := make([]byte, 2000)
	target := make([]byte, 3000)
	for i := 0; i < 100; i++ {
		target[i] = 255
	}

	diff, ok := CreateDiff(base, target, DefaultMinDiffSize)
	if !ok {
		t.Fatal("expected a diff to be produced")
	}

	got, err := ApplyDiff(base, diff, 3000)
	if err != nil {
		t.Fatalf("ApplyDiff: %v", err)
	}
	if len(got) != 3000 {
		t.Fatalf("result length = %d, want 3000", len(got))
	}
	if !bytes.Equal(got, target) {
		t.Fatal("roundtrip mismatch")
	}
}

func TestDiff_NonInflation(t *testing.T) {
	base := make([]byte, 2000)
	target := make([]byte, 2000)
	// Completely random-looking (alternating) content: every byte differs,
	// so a positional diff would be larger than the target. Expect None.
	for i := range target {
		if i%2 == 0 {
			target[i] = byte(i % 256)
		} else {
			base[i] = byte((i + 1) % 256)
		}
	}
	if _, ok := CreateDiff(base, target, DefaultMinDiffSize); ok {
		t.Fatal("expected no diff when encoding would not shrink the target")
	}
}

func TestApplyDiff_HeaderMismatch(t *testing.T) {
	base := make([]byte, 2000)
	target := make([]byte, 2000)
	target[5] = 9
	diff, ok := CreateDiff(base, target, DefaultMinDiffSize)
	if !ok {
		t.Fatal("expected a diff")
	}
	if _, err := ApplyDiff(base, diff, 1999); err == nil {
		t.Fatal("expected integrity error on length mismatch")
	}
}

func TestApplyDiff_TruncatedChunk(t *testing.T) {
	diff := &Diff{Data: []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}, OriginalSize: 0, NewSize: 0}
	binary.LittleEndian.PutUint64(diff.Data[:8], 10)
	if _, err := ApplyDiff(nil, diff, 10); err == nil {
		t.Fatal("expected integrity error on truncated chunk header")
	}
}
