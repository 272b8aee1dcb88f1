package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	// Zone validation must not depend on the host's zoneinfo.
	_ "time/tzdata"

	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Service manages user profiles and avatars.
type Service interface {
	Sync(ctx context.Context, userID int64, req SyncRequest) (Profile, error)
	Get(ctx context.Context, userID int64) (Profile, error)
	UploadAvatar(ctx context.Context, userID int64, data []byte, contentType string) (Profile, error)
	Avatar(ctx context.Context, userID int64) (io.ReadCloser, Avatar, error)
}

type service struct {
	cfg      Config
	repo     Repository
	avatars  AvatarStore
	accounts AccountDirectory
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the profile domain.
func NewService(cfg Config, repo Repository, avatars AvatarStore, accounts AccountDirectory, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		repo:     repo,
		avatars:  avatars,
		accounts: accounts,
		logger:   logger.With("component", "profile.service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sync returns the existing profile untouched, or creates one from the
// request and account details.
func (s *service) Sync(ctx context.Context, userID int64, req SyncRequest) (Profile, error) {
	existing, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeProfileError, "failed to load profile", err)
	}
	if found {
		return existing, nil
	}

	now := s.now()
	created, err := s.repo.CreateIfAbsent(ctx, Profile{
		UserID:    userID,
		Nickname:  s.resolveNickname(ctx, userID, req.Nickname),
		Timezone:  resolveTimezone(req.Timezone),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeProfileError, "failed to create profile", err)
	}
	s.logger.Info("profile created", "user_id", userID, "timezone", created.Timezone)
	return created, nil
}

func (s *service) Get(ctx context.Context, userID int64) (Profile, error) {
	p, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeProfileError, "failed to load profile", err)
	}
	if !found {
		return Profile{}, apperrors.Wrap(apperrors.CodeNotFound, "profile not found", nil)
	}
	return p, nil
}

func (s *service) UploadAvatar(ctx context.Context, userID int64, data []byte, contentType string) (Profile, error) {
	if s.avatars == nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeStorageError, "avatar storage is not configured", nil)
	}
	if len(data) == 0 {
		return Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput, "avatar is empty", nil)
	}
	if s.cfg.AvatarMaxBytes > 0 && int64(len(data)) > s.cfg.AvatarMaxBytes {
		return Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("avatar exceeds %d bytes", s.cfg.AvatarMaxBytes), nil)
	}
	mime, err := avatarContentType(data, contentType)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return Profile{}, err
	}

	key := AvatarKey(userID)
	if _, err := s.avatars.Put(ctx, key, data, mime); err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to store avatar", err)
	}
	updated, err := s.repo.SetAvatar(ctx, userID, key, mime)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeProfileError, "failed to record avatar", err)
	}
	s.logger.Info("avatar uploaded", "user_id", userID, "bytes", len(data), "content_type", mime)
	return updated, nil
}

func (s *service) Avatar(ctx context.Context, userID int64) (io.ReadCloser, Avatar, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, Avatar{}, err
	}
	if p.AvatarKey == "" || s.avatars == nil {
		return nil, Avatar{}, apperrors.Wrap(apperrors.CodeNotFound, "avatar not found", nil)
	}
	body, meta, err := s.avatars.Get(ctx, p.AvatarKey)
	if errors.Is(err, ErrAvatarMissing) {
		return nil, Avatar{}, apperrors.Wrap(apperrors.CodeNotFound, "avatar not found", err)
	}
	if err != nil {
		return nil, Avatar{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to read avatar", err)
	}
	if meta.ContentType == "" {
		meta.ContentType = p.AvatarContentType
	}
	return body, meta, nil
}

func (s *service) resolveNickname(ctx context.Context, userID int64, requested string) string {
	if nickname := strings.TrimSpace(requested); nickname != "" {
		return nickname
	}
	if s.accounts != nil {
		account, err := s.accounts.Account(ctx, userID)
		if err != nil {
			s.logger.Warn("account lookup failed during profile sync", "user_id", userID, "error", err)
		} else if nickname := strings.TrimSpace(account.Nickname); nickname != "" {
			return nickname
		}
	}
	return DefaultNickname
}

// AvatarKey is the object key holding a user's avatar.
func AvatarKey(userID int64) string {
	return fmt.Sprintf("avatars/%d", userID)
}

func resolveTimezone(raw string) string {
	tz := strings.TrimSpace(raw)
	// time.LoadLocation maps "" and "Local" to zones we never want to store.
	if tz == "" || tz == "Local" {
		return DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return DefaultTimezone
	}
	return tz
}

// avatarContentType trusts the sniffed type over the declared one.
func avatarContentType(data []byte, declared string) (string, error) {
	sniffed := http.DetectContentType(data)
	if allowedAvatarTypes[sniffed] {
		return sniffed, nil
	}
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if declared != "" && !allowedAvatarTypes[declared] {
		return "", fmt.Errorf("unsupported avatar type %q", declared)
	}
	return "", fmt.Errorf("avatar must be png, jpeg or webp")
}
