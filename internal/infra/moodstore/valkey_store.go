package moodstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/mindmend/internal/domain/journal"
)

// ValkeyStore keeps each user's mood list as a JSON string.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store; keys are "<prefix>:<userID>".
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "moods"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Load(ctx context.Context, userID int64) ([]string, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(userID)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var moods []string
	if err := json.Unmarshal([]byte(payload), &moods); err != nil {
		return nil, false, fmt.Errorf("decode moods for user %d: %w", userID, err)
	}
	return moods, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, userID int64, moods []string) error {
	payload, err := json.Marshal(moods)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Set().Key(s.key(userID)).Value(string(payload)).Build()).Error()
}

func (s *ValkeyStore) key(userID int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}

var _ journal.MoodStore = (*ValkeyStore)(nil)
