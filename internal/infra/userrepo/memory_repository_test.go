package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/auth"
)

func TestMemoryRepositoryUsers(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, "ana@example.com", "Ana", "hash")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.False(t, user.CreatedAt.IsZero())

	_, err = repo.Create(ctx, "ana@example.com", "Other", "hash")
	require.ErrorIs(t, err, auth.ErrEmailExists)

	byEmail, found, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user, byEmail)

	_, found, err = repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryUpsertIdentityKeepsStoredValues(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.UpsertIdentity(ctx, auth.Identity{Provider: "google", ProviderSubject: "sub"})
	require.Error(t, err)

	first, err := repo.UpsertIdentity(ctx, auth.Identity{
		UserID:          7,
		Provider:        "google",
		ProviderSubject: "sub",
		ProviderEmail:   "ana@example.com",
		RefreshToken:    "sealed-1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)

	second, err := repo.UpsertIdentity(ctx, auth.Identity{UserID: 7, Provider: "google", ProviderSubject: "sub"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "sealed-1", second.RefreshToken)
	require.Equal(t, "ana@example.com", second.ProviderEmail)

	byUser, found, err := repo.GetIdentityByUser(ctx, 7, "google")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "sub", byUser.ProviderSubject)

	_, found, err = repo.GetIdentity(ctx, "google", "missing")
	require.NoError(t, err)
	require.False(t, found)
}
