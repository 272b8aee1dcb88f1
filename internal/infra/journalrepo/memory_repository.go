package journalrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/mindmend/internal/domain/journal"
)

// MemoryRepository keeps entries in memory for local runs and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []journal.LogEntry
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, entry journal.LogEntry) (journal.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.ID == entry.ID {
			return journal.LogEntry{}, fmt.Errorf("entry %s already exists", entry.ID)
		}
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]journal.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []journal.LogEntry
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, cloneEntry(entry))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) SetAIResponse(_ context.Context, entryID string, advice string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == entryID {
			text := advice
			r.entries[i].AIResponse = &text
			return nil
		}
	}
	return fmt.Errorf("entry %s not found", entryID)
}

func (r *MemoryRepository) LatestRelapse(_ context.Context, userID int64) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		latest time.Time
		found  bool
	)
	for _, entry := range r.entries {
		if entry.UserID != userID || entry.Type != journal.EntryRelapse {
			continue
		}
		if !found || entry.CreatedAt.After(latest) {
			latest = entry.CreatedAt
			found = true
		}
	}
	return latest, found, nil
}

func cloneEntry(entry journal.LogEntry) journal.LogEntry {
	if entry.AIResponse != nil {
		text := *entry.AIResponse
		entry.AIResponse = &text
	}
	return entry
}

var _ journal.Repository = (*MemoryRepository)(nil)
