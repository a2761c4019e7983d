// Package memorystore is a non-durable reference implementation of
// checkpoint.Store, suitable for tests and the demo CLI. It is explicitly
// not a production inner store: durable persistence of the inner store is
// out of scope for this module.
package memorystore

import (
	"context"
	"sort"
	"sync"

	"coreflow/internal/checkpoint"
)

// Store is a goroutine-safe, process-local checkpoint.Store.
type Store struct {
	mu       sync.Mutex
	byID     map[string]checkpoint.Checkpoint
	byThread map[string][]string // chronological ids per thread
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		byID:     make(map[string]checkpoint.Checkpoint),
		byThread: make(map[string][]string),
	}
}

func (s *Store) Save(_ context.Context, ckpt checkpoint.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[ckpt.ID]; !exists {
		s.byThread[ckpt.ThreadID] = append(s.byThread[ckpt.ThreadID], ckpt.ID)
	}
	s.byID[ckpt.ID] = ckpt
	return nil
}

func (s *Store) Load(_ context.Context, id string) (checkpoint.Checkpoint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ckpt, ok := s.byID[id]
	return ckpt, ok, nil
}

func (s *Store) GetLatest(_ context.Context, threadID string) (checkpoint.Checkpoint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.byThread[threadID]
	if len(ids) == 0 {
		return checkpoint.Checkpoint{}, false, nil
	}
	return s.byID[ids[len(ids)-1]], true, nil
}

func (s *Store) List(_ context.Context, threadID string) ([]checkpoint.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.byThread[threadID]
	out := make([]checkpoint.Metadata, 0, len(ids))
	for _, id := range ids {
		ckpt := s.byID[id]
		out = append(out, checkpoint.Metadata{
			ID:        ckpt.ID,
			ThreadID:  ckpt.ThreadID,
			Node:      ckpt.Node,
			Timestamp: ckpt.Timestamp,
			ParentID:  ckpt.ParentID,
			Metadata:  ckpt.Metadata,
		})
	}
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ckpt, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byID, id)
	ids := s.byThread[ckpt.ThreadID]
	for i, existing := range ids {
		if existing == id {
			s.byThread[ckpt.ThreadID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) DeleteThread(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.byThread[threadID] {
		delete(s.byID, id)
	}
	delete(s.byThread, threadID)
	return nil
}

func (s *Store) ListThreads(_ context.Context) ([]checkpoint.ThreadInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]checkpoint.ThreadInfo, 0, len(s.byThread))
	for threadID, ids := range s.byThread {
		out = append(out, checkpoint.ThreadInfo{ThreadID: threadID, SaveCount: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ThreadID < out[j].ThreadID })
	return out, nil
}
