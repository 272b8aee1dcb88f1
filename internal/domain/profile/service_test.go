package profile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/domain/profile"
	"github.com/yanqian/mindmend/internal/infra/avatarstore"
	"github.com/yanqian/mindmend/internal/infra/profilerepo"
	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type stubAccounts map[int64]string

func (s stubAccounts) Account(_ context.Context, userID int64) (auth.Account, error) {
	nickname, ok := s[userID]
	if !ok {
		return auth.Account{}, errors.New("unknown account")
	}
	return auth.Account{ID: userID, Nickname: nickname}, nil
}

func newService(accounts stubAccounts) profile.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return profile.NewService(
		profile.Config{AvatarMaxBytes: 64},
		profilerepo.NewMemoryRepository(),
		avatarstore.NewMemoryStore(),
		accounts,
		logger,
	)
}

func TestSyncCreatesOnce(t *testing.T) {
	svc := newService(stubAccounts{1: "Robin"})
	ctx := context.Background()

	created, err := svc.Sync(ctx, 1, profile.SyncRequest{Nickname: "  Sky ", Timezone: "Asia/Singapore"})
	require.NoError(t, err)
	require.Equal(t, "Sky", created.Nickname)
	require.Equal(t, "Asia/Singapore", created.Timezone)

	again, err := svc.Sync(ctx, 1, profile.SyncRequest{Nickname: "Other", Timezone: "Europe/Paris"})
	require.NoError(t, err)
	require.Equal(t, created, again)
}

func TestSyncFallbacks(t *testing.T) {
	svc := newService(stubAccounts{1: "Robin"})
	ctx := context.Background()

	fromAccount, err := svc.Sync(ctx, 1, profile.SyncRequest{Timezone: "Not/AZone"})
	require.NoError(t, err)
	require.Equal(t, "Robin", fromAccount.Nickname)
	require.Equal(t, profile.DefaultTimezone, fromAccount.Timezone)

	anonymous, err := svc.Sync(ctx, 2, profile.SyncRequest{})
	require.NoError(t, err)
	require.Equal(t, profile.DefaultNickname, anonymous.Nickname)
	require.Equal(t, "UTC", anonymous.Timezone)
}

func TestGetBeforeSync(t *testing.T) {
	svc := newService(nil)
	_, err := svc.Get(context.Background(), 9)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestAvatarUploadAndRead(t *testing.T) {
	svc := newService(stubAccounts{1: "Robin"})
	ctx := context.Background()
	_, err := svc.Sync(ctx, 1, profile.SyncRequest{})
	require.NoError(t, err)

	_, _, err = svc.Avatar(ctx, 1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	updated, err := svc.UploadAvatar(ctx, 1, pngHeader, "application/octet-stream")
	require.NoError(t, err)
	require.Equal(t, "avatars/1", updated.AvatarKey)
	require.Equal(t, "image/png", updated.AvatarContentType)

	body, meta, err := svc.Avatar(ctx, 1)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, pngHeader, data)
	require.Equal(t, "image/png", meta.ContentType)
}

func TestAvatarUploadValidation(t *testing.T) {
	svc := newService(stubAccounts{1: "Robin"})
	ctx := context.Background()
	_, err := svc.Sync(ctx, 1, profile.SyncRequest{})
	require.NoError(t, err)

	_, err = svc.UploadAvatar(ctx, 1, []byte("GIF89a....."), "image/gif")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.UploadAvatar(ctx, 1, make([]byte, 65), "image/png")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.UploadAvatar(ctx, 1, nil, "image/png")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.UploadAvatar(ctx, 2, pngHeader, "image/png")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
