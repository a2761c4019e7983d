package checkpoint

import (
	"context"
	"fmt"
	"sync"

	"coreflow/internal/checkpoint/blockingpool"
)

// Checkpointer wraps an inner Store with periodic full bases plus
// positional binary diffs against the most recent base. The in-process
// cache is purely an optimization: every checkpoint, whether cached as Full
// or Diff, is forwarded to the inner store as a complete logical
// checkpoint, so the inner store never needs to understand diffing.
//
// Three maps are each guarded by their own mutex, mirroring the three
// independent locks of the design this was ported from: no single
// operation needs all three held at once, and none is ever held across a
// call into the inner store or the blocking pool.
type Checkpointer struct {
	inner Store
	cfg   DifferentialConfig
	pool  *blockingpool.Pool

	entriesMu sync.Mutex
	entries   map[string]differentialEntry

	countsMu sync.Mutex
	counts   map[string]int

	lastBaseMu sync.Mutex
	lastBase   map[string]string
}

// New builds a Checkpointer. pool may be nil, in which case a pool sized
// for 4 concurrent jobs is created.
func New(inner Store, cfg DifferentialConfig, pool *blockingpool.Pool) *Checkpointer {
	if pool == nil {
		pool = blockingpool.New(4)
	}
	return &Checkpointer{
		inner:    inner,
		cfg:      cfg,
		pool:     pool,
		entries:  make(map[string]differentialEntry),
		counts:   make(map[string]int),
		lastBase: make(map[string]string),
	}
}

func (c *Checkpointer) getEntry(id string) (differentialEntry, bool) {
	c.entriesMu.Lock()
	defer c.entriesMu.Unlock()
	e, ok := c.entries[id]
	return e, ok
}

func (c *Checkpointer) setEntry(id string, e differentialEntry) {
	c.entriesMu.Lock()
	defer c.entriesMu.Unlock()
	c.entries[id] = e
}

func (c *Checkpointer) incrementCount(threadID string) int {
	c.countsMu.Lock()
	defer c.countsMu.Unlock()
	c.counts[threadID]++
	return c.counts[threadID]
}

func (c *Checkpointer) getLastBase(threadID string) (string, bool) {
	c.lastBaseMu.Lock()
	defer c.lastBaseMu.Unlock()
	id, ok := c.lastBase[threadID]
	return id, ok
}

func (c *Checkpointer) setLastBase(threadID, id string) {
	c.lastBaseMu.Lock()
	defer c.lastBaseMu.Unlock()
	c.lastBase[threadID] = id
}

// Save decides, per ckpt, whether to store a full base or a diff against
// the thread's last base, then always forwards the full logical checkpoint
// to the inner store.
func (c *Checkpointer) Save(ctx context.Context, ckpt Checkpoint) error {
	count := c.incrementCount(ckpt.ThreadID)
	storeFull := ckpt.ParentID == "" || (c.cfg.BaseInterval > 0 && count%c.cfg.BaseInterval == 0)

	if !storeFull {
		if baseID, ok := c.getLastBase(ckpt.ThreadID); ok {
			baseCkpt, err := c.resolve(ctx, baseID, 0)
			if err == nil {
				diff, created, derr := c.computeDiff(ctx, baseCkpt.State, ckpt.State)
				if derr == nil && created {
					c.setEntry(ckpt.ID, differentialEntry{
						kind: entryDiff,
						meta: metadataOf(ckpt),
						diff: CheckpointDiff{
							BaseID:       baseID,
							Diff:         diff.Data,
							OriginalSize: diff.OriginalSize,
							NewSize:      diff.NewSize,
						},
						parentID: ckpt.ParentID,
					})
					if err := c.inner.Save(ctx, ckpt); err != nil {
						return err
					}
					return nil
				}
			}
			// Diffing failed, was declined, or the base couldn't be
			// resolved: fall through and store this save as a new base.
		} else {
			// No known base for this thread yet: this save must become one.
		}
		storeFull = true
	}

	c.setEntry(ckpt.ID, differentialEntry{kind: entryFull, full: ckpt, parentID: ckpt.ParentID})
	c.setLastBase(ckpt.ThreadID, ckpt.ID)
	return c.inner.Save(ctx, ckpt)
}

func metadataOf(ckpt Checkpoint) Metadata {
	return Metadata{
		ID:        ckpt.ID,
		ThreadID:  ckpt.ThreadID,
		Node:      ckpt.Node,
		Timestamp: ckpt.Timestamp,
		ParentID:  ckpt.ParentID,
		Metadata:  ckpt.Metadata,
	}
}

// computeDiff routes CreateDiff through the blocking pool: diffing is the
// CPU-bound step this package must never run inline on a caller's
// goroutine for large state.
func (c *Checkpointer) computeDiff(ctx context.Context, base, target []byte) (*Diff, bool, error) {
	type out struct {
		diff *Diff
		ok   bool
	}
	r, err := blockingpool.Run(ctx, c.pool, func() (out, error) {
		d, ok := CreateDiff(base, target, c.cfg.MinDiffSize)
		return out{d, ok}, nil
	})
	return r.diff, r.ok, err
}

func (c *Checkpointer) applyDiff(ctx context.Context, base []byte, diff *Diff, expectedLen int) ([]byte, error) {
	return blockingpool.Run(ctx, c.pool, func() ([]byte, error) {
		return ApplyDiff(base, diff, expectedLen)
	})
}

// Load reconstructs the checkpoint identified by id, preferring the
// in-process cache (including chains of diffs) and falling back to the
// inner store, which always holds the full logical state.
func (c *Checkpointer) Load(ctx context.Context, id string) (Checkpoint, bool, error) {
	ckpt, err := c.resolve(ctx, id, 0)
	if err != nil {
		if err == errMissingBase {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, err
	}
	return ckpt, true, nil
}

var errMissingBase = fmt.Errorf("%w: missing base", ErrNotFound)

// resolve reconstructs the checkpoint for id, following a chain of cached
// diffs for up to MaxChainLength hops; a longer chain is an ErrIntegrity
// error. Ids absent from the cache are loaded from the inner store.
func (c *Checkpointer) resolve(ctx context.Context, id string, depth int) (Checkpoint, error) {
	if entry, ok := c.getEntry(id); ok {
		switch entry.kind {
		case entryFull:
			return entry.full, nil
		case entryDiff:
			if depth+1 > c.cfg.MaxChainLength {
				return Checkpoint{}, fmt.Errorf("%w: chain exceeds max length %d", ErrIntegrity, c.cfg.MaxChainLength)
			}
			base, err := c.resolve(ctx, entry.diff.BaseID, depth+1)
			if err != nil {
				return Checkpoint{}, err
			}
			state, err := c.applyDiff(ctx, base.State, &Diff{
				Data:         entry.diff.Diff,
				OriginalSize: entry.diff.OriginalSize,
				NewSize:      entry.diff.NewSize,
			}, entry.diff.NewSize)
			if err != nil {
				return Checkpoint{}, err
			}
			return Checkpoint{
				ID:        entry.meta.ID,
				ThreadID:  entry.meta.ThreadID,
				State:     state,
				Node:      entry.meta.Node,
				Timestamp: entry.meta.Timestamp,
				ParentID:  entry.meta.ParentID,
				Metadata:  entry.meta.Metadata,
			}, nil
		}
	}

	// Not cached: the inner store always holds the full logical state.
	ckpt, found, err := c.inner.Load(ctx, id)
	if err != nil {
		return Checkpoint{}, err
	}
	if !found {
		return Checkpoint{}, errMissingBase
	}
	return ckpt, nil
}

// GetLatest delegates to the inner store, which always holds the full
// logical state for the most recent save on the thread.
func (c *Checkpointer) GetLatest(ctx context.Context, threadID string) (Checkpoint, bool, error) {
	return c.inner.GetLatest(ctx, threadID)
}

// List always delegates.
func (c *Checkpointer) List(ctx context.Context, threadID string) ([]Metadata, error) {
	return c.inner.List(ctx, threadID)
}

// ListThreads always delegates.
func (c *Checkpointer) ListThreads(ctx context.Context) ([]ThreadInfo, error) {
	return c.inner.ListThreads(ctx)
}

// Delete removes the cache entry, if any, then delegates.
func (c *Checkpointer) Delete(ctx context.Context, id string) error {
	c.entriesMu.Lock()
	delete(c.entries, id)
	c.entriesMu.Unlock()
	return c.inner.Delete(ctx, id)
}

// DeleteThread removes all cache entries, the save count, and the last-base
// id for threadID before delegating.
func (c *Checkpointer) DeleteThread(ctx context.Context, threadID string) error {
	c.entriesMu.Lock()
	for id, e := range c.entries {
		tid := e.full.ThreadID
		if e.kind == entryDiff {
			tid = e.meta.ThreadID
		}
		if tid == threadID {
			delete(c.entries, id)
		}
	}
	c.entriesMu.Unlock()

	c.countsMu.Lock()
	delete(c.counts, threadID)
	c.countsMu.Unlock()

	c.lastBaseMu.Lock()
	delete(c.lastBase, threadID)
	c.lastBaseMu.Unlock()

	return c.inner.DeleteThread(ctx, threadID)
}
