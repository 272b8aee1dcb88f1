package journalrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/journal"
)

func TestMemoryRepositoryOrderingAndRelapse(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	entries := []journal.LogEntry{
		{ID: "a", UserID: 1, Type: journal.EntryRelapse, Mood: "Sad", CreatedAt: base},
		{ID: "b", UserID: 1, Type: journal.EntryUrge, Mood: "Bored", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c", UserID: 1, Type: journal.EntryRelapse, Mood: "Tired", CreatedAt: base.Add(time.Hour)},
		{ID: "d", UserID: 2, Type: journal.EntryRelapse, Mood: "Angry", CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, e := range entries {
		_, err := repo.Insert(ctx, e)
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, entries[0])
	require.Error(t, err)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	require.Equal(t, []string{"b", "c", "a"}, ids)

	latest, found, err := repo.LatestRelapse(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, base.Add(time.Hour), latest)

	_, found, err = repo.LatestRelapse(ctx, 3)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositorySetAIResponse(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, err := repo.Insert(ctx, journal.LogEntry{ID: "x", UserID: 1, Type: journal.EntryUrge, Mood: "Calm", CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.SetAIResponse(ctx, "x", "Breathe slowly."))
	require.Error(t, repo.SetAIResponse(ctx, "missing", "nope"))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, list[0].AIResponse)
	require.Equal(t, "Breathe slowly.", *list[0].AIResponse)

	*list[0].AIResponse = "mutated"
	again, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Breathe slowly.", *again[0].AIResponse)
}
