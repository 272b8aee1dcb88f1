package profilerepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

// MemoryRepository keeps profiles in memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]profile.Profile
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[int64]profile.Profile)}
}

func (r *MemoryRepository) Get(_ context.Context, userID int64) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	return p, ok, nil
}

func (r *MemoryRepository) CreateIfAbsent(_ context.Context, p profile.Profile) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.UserID]; ok {
		return existing, nil
	}
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *MemoryRepository) SetAvatar(_ context.Context, userID int64, key, contentType string) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return profile.Profile{}, fmt.Errorf("profile %d not found", userID)
	}
	p.AvatarKey = key
	p.AvatarContentType = contentType
	p.UpdatedAt = time.Now().UTC()
	r.profiles[userID] = p
	return p, nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
