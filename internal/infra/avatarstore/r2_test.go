package avatarstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

func TestSplitEndpoint(t *testing.T) {
	host, secure, err := splitEndpoint("https://acct.r2.cloudflarestorage.com/bucket")
	require.NoError(t, err)
	require.Equal(t, "acct.r2.cloudflarestorage.com", host)
	require.True(t, secure)

	host, secure, err = splitEndpoint("http://localhost:9000")
	require.NoError(t, err)
	require.Equal(t, "localhost:9000", host)
	require.False(t, secure)

	host, secure, err = splitEndpoint("minio.internal:9000")
	require.NoError(t, err)
	require.Equal(t, "minio.internal:9000", host)
	require.True(t, secure)

	_, _, err = splitEndpoint("  ")
	require.Error(t, err)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.Get(ctx, "avatars/1")
	require.ErrorIs(t, err, profile.ErrAvatarMissing)

	meta, err := store.Put(ctx, "avatars/1", []byte("img"), "image/png")
	require.NoError(t, err)
	require.Equal(t, int64(3), meta.Size)
	require.NotEmpty(t, meta.ETag)

	body, got, err := store.Get(ctx, "avatars/1")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "img", string(data))
	require.Equal(t, meta, got)
}
