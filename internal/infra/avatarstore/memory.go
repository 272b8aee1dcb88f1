package avatarstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

type blob struct {
	data []byte
	meta profile.Avatar
}

// MemoryStore keeps avatars in memory for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]blob)}
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) (profile.Avatar, error) {
	sum := md5.Sum(data)
	meta := profile.Avatar{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		ETag:        hex.EncodeToString(sum[:]),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob{data: bytes.Clone(data), meta: meta}
	return meta, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, profile.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, profile.Avatar{}, profile.ErrAvatarMissing
	}
	return io.NopCloser(bytes.NewReader(b.data)), b.meta, nil
}

var _ profile.AvatarStore = (*MemoryStore)(nil)
