package userrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yanqian/mindmend/internal/domain/auth"
)

type identityRef struct {
	provider string
	subject  string
}

type userRef struct {
	provider string
	userID   int64
}

// MemoryRepository keeps accounts in process memory for local runs and tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	users       map[int64]auth.User
	byEmail     map[string]int64
	identities  map[identityRef]auth.Identity
	byUser      map[userRef]identityRef
	seq         int64
	identitySeq int64
	now         func() time.Time
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[int64]auth.User),
		byEmail:    make(map[string]int64),
		identities: make(map[identityRef]auth.Identity),
		byUser:     make(map[userRef]identityRef),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, email, nickname, passwordHash string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return auth.User{}, auth.ErrEmailExists
	}
	r.seq++
	user := auth.User{
		ID:           r.seq,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    r.now(),
	}
	r.users[user.ID] = user
	r.byEmail[email] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, false, nil
	}
	return r.users[id], true, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *MemoryRepository) GetIdentity(_ context.Context, provider, providerSubject string) (auth.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.identities[identityRef{provider, providerSubject}]
	return identity, ok, nil
}

func (r *MemoryRepository) GetIdentityByUser(_ context.Context, userID int64, provider string) (auth.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.byUser[userRef{provider, userID}]
	if !ok {
		return auth.Identity{}, false, nil
	}
	return r.identities[ref], true, nil
}

// UpsertIdentity keeps the stored refresh token and email when the update
// carries empty values.
func (r *MemoryRepository) UpsertIdentity(_ context.Context, identity auth.Identity) (auth.Identity, error) {
	if identity.UserID == 0 {
		return auth.Identity{}, errors.New("identity user id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ref := identityRef{identity.Provider, identity.ProviderSubject}
	now := r.now()
	if existing, ok := r.identities[ref]; ok {
		if identity.RefreshToken != "" {
			existing.RefreshToken = identity.RefreshToken
		}
		if identity.ProviderEmail != "" {
			existing.ProviderEmail = identity.ProviderEmail
		}
		existing.UpdatedAt = now
		r.identities[ref] = existing
		return existing, nil
	}
	r.identitySeq++
	identity.ID = r.identitySeq
	identity.CreatedAt = now
	identity.UpdatedAt = now
	r.identities[ref] = identity
	r.byUser[userRef{identity.Provider, identity.UserID}] = ref
	return identity, nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
