package moodstore

import (
	"context"
	"sync"

	"github.com/yanqian/mindmend/internal/domain/journal"
)

// MemoryStore keeps mood lists in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	moods map[int64][]string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{moods: make(map[int64][]string)}
}

func (s *MemoryStore) Load(_ context.Context, userID int64) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moods, ok := s.moods[userID]
	if !ok {
		return nil, false, nil
	}
	return append([]string(nil), moods...), true, nil
}

func (s *MemoryStore) Save(_ context.Context, userID int64, moods []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moods[userID] = append([]string(nil), moods...)
	return nil
}

var _ journal.MoodStore = (*MemoryStore)(nil)
