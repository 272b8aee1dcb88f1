package profile

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yanqian/mindmend/internal/domain/auth"
)

// DefaultNickname is used when neither the sync request nor the account
// carries a nickname.
const DefaultNickname = "Friend"

// DefaultTimezone is used when the device reports no usable zone.
const DefaultTimezone = "UTC"

// ErrAvatarMissing is returned by avatar stores for unknown keys.
var ErrAvatarMissing = errors.New("avatar not found")

// Config bounds avatar uploads.
type Config struct {
	AvatarMaxBytes int64
}

// Profile is the per-user record created on first sign-in.
type Profile struct {
	UserID            int64     `json:"userId"`
	Nickname          string    `json:"nickname"`
	Timezone          string    `json:"timezone"`
	AvatarKey         string    `json:"avatarKey,omitempty"`
	AvatarContentType string    `json:"avatarContentType,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SyncRequest is sent by the client after sign-in.
type SyncRequest struct {
	Nickname string `json:"nickname"`
	Timezone string `json:"timezone"`
}

// Avatar describes a stored profile picture.
type Avatar struct {
	Key         string
	ContentType string
	Size        int64
	ETag        string
}

// Repository persists profiles.
type Repository interface {
	Get(ctx context.Context, userID int64) (Profile, bool, error)
	// CreateIfAbsent inserts p unless a profile already exists for the user,
	// and returns whichever profile is stored afterwards.
	CreateIfAbsent(ctx context.Context, p Profile) (Profile, error)
	SetAvatar(ctx context.Context, userID int64, key, contentType string) (Profile, error)
}

// AvatarStore keeps avatar bytes in object storage.
type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Avatar, error)
	Get(ctx context.Context, key string) (io.ReadCloser, Avatar, error)
}

// AccountDirectory resolves account details for new profiles.
type AccountDirectory interface {
	Account(ctx context.Context, userID int64) (auth.Account, error)
}
