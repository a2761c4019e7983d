package checkpoint

import (
	"encoding/binary"
	"fmt"
)

// DefaultMinDiffSize is the minimum new-state size, in bytes, that CreateDiff
// uses when its minDiffSize argument is zero or negative. Below the minimum in
// effect, CreateDiff returns (nil, false): the bookkeeping overhead of a diff
// chunk header isn't worth it.
const DefaultMinDiffSize = 1024

// resyncWindow is how many consecutive matching bytes ahead of a divergence
// must be seen before a chunk is closed. Keeping this small keeps chunking
// cheap; 8 mirrors the original implementation's resync heuristic.
const resyncWindow = 8

// diffChunk is a single positional replacement: bytes[pos:pos+len(bytes)]
// in the target differ from the base and must be overwritten verbatim.
type diffChunk struct {
	pos   uint32
	bytes []byte
}

// Diff is a positional binary delta against a named base. Applying it to a
// base of exactly OriginalSize bytes reproduces the target of exactly
// NewSize bytes.
type Diff struct {
	Data         []byte
	OriginalSize int
	NewSize      int
}

// CreateDiff computes a positional diff turning base into target. It
// returns (nil, false) when target is smaller than minDiffSize
// (DefaultMinDiffSize when minDiffSize <= 0), or
// when the encoded diff would not be smaller than target itself — in either
// case the caller should store target as a new full base instead.
func CreateDiff(base, target []byte, minDiffSize int) (*Diff, bool) {
	if minDiffSize <= 0 {
		minDiffSize = DefaultMinDiffSize
	}
	if len(target) < minDiffSize {
		return nil, false
	}

	chunks := computeChunks(base, target)
	encoded := encodeDiff(target, chunks)
	if len(encoded) >= len(target) {
		return nil, false
	}

	return &Diff{
		Data:         encoded,
		OriginalSize: len(base),
		NewSize:      len(target),
	}, true
}

// computeChunks scans base and target in lock-step. Runs of equal bytes are
// skipped; at the first divergence a chunk is opened and extended until
// either resyncWindow consecutive bytes match again (resync) or the chunk
// hits the u16 length cap.
func computeChunks(base, target []byte) []diffChunk {
	var chunks []diffChunk
	i := 0
	n := len(target)

	for i < n {
		if i < len(base) && base[i] == target[i] {
			i++
			continue
		}

		start := i
		for i < n {
			i++
			if i-start >= 0xFFFF {
				break
			}
			// Resync: resyncWindow consecutive equal bytes ahead closes the chunk.
			if matchesAhead(base, target, i, resyncWindow) {
				break
			}
		}
		chunks = append(chunks, diffChunk{
			pos:   uint32(start),
			bytes: append([]byte(nil), target[start:i]...),
		})
	}

	return chunks
}

// matchesAhead reports whether the next n bytes (or all remaining bytes, if
// fewer than n remain) of base and target agree starting at pos. An empty
// remaining tail counts as a resync point.
func matchesAhead(base, target []byte, pos, n int) bool {
	end := pos + n
	if end > len(target) {
		end = len(target)
	}
	if pos >= end {
		return true
	}
	for k := pos; k < end; k++ {
		if k >= len(base) || base[k] != target[k] {
			return false
		}
	}
	return true
}

// encodeDiff serializes the 8-byte little-endian target length header
// followed by (pos u32 LE, len u16 LE, bytes) for each chunk.
func encodeDiff(target []byte, chunks []diffChunk) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(len(target)))

	for _, c := range chunks {
		hdr := make([]byte, 6)
		binary.LittleEndian.PutUint32(hdr[0:4], c.pos)
		binary.LittleEndian.PutUint16(hdr[4:6], uint16(len(c.bytes)))
		buf = append(buf, hdr...)
		buf = append(buf, c.bytes...)
	}
	return buf
}

// ApplyDiff reconstructs the target bytes from base and a previously
// produced Diff. expectedLen must equal the length header encoded in
// diff.Data; this double-check guards against applying the wrong diff to
// the wrong chain link.
func ApplyDiff(base []byte, diff *Diff, expectedLen int) ([]byte, error) {
	if diff == nil {
		return nil, fmt.Errorf("%w: nil diff", ErrIntegrity)
	}
	data := diff.Data
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: diff shorter than header", ErrIntegrity)
	}

	targetLen := binary.LittleEndian.Uint64(data[:8])
	if int(targetLen) != expectedLen {
		return nil, fmt.Errorf("%w: header length %d != expected %d", ErrIntegrity, targetLen, expectedLen)
	}

	result := make([]byte, targetLen)
	n := copy(result, base)
	// Bytes beyond len(base) are already zero-valued from make(); bytes
	// beyond targetLen in base are simply not copied (truncation).
	_ = n

	pos := 8
	for pos < len(data) {
		if pos+6 > len(data) {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrIntegrity)
		}
		chunkPos := binary.LittleEndian.Uint32(data[pos : pos+4])
		chunkLen := binary.LittleEndian.Uint16(data[pos+4 : pos+6])
		pos += 6

		if pos+int(chunkLen) > len(data) {
			return nil, fmt.Errorf("%w: chunk overruns diff tail", ErrIntegrity)
		}
		if uint64(chunkPos)+uint64(chunkLen) > targetLen {
			return nil, fmt.Errorf("%w: chunk overruns target length", ErrIntegrity)
		}

		copy(result[chunkPos:chunkPos+uint32(chunkLen)], data[pos:pos+int(chunkLen)])
		pos += int(chunkLen)
	}

	return result, nil
}
