package journal_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/domain/journal"
	"github.com/yanqian/mindmend/internal/infra/journalrepo"
	"github.com/yanqian/mindmend/internal/infra/moodstore"
	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

var joined = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

type stubAdvisor struct {
	mu    sync.Mutex
	text  string
	ok    bool
	calls []advice.Request
}

func (s *stubAdvisor) RequestAdvice(_ context.Context, req advice.Request) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	return s.text, s.ok
}

type stubAccounts struct{}

func (stubAccounts) Account(_ context.Context, userID int64) (auth.Account, error) {
	return auth.Account{ID: userID, CreatedAt: joined}, nil
}

type fixedQuote string

func (q fixedQuote) DailyQuote() string { return string(q) }

// failingAdviceWrites rejects every ai_response update.
type failingAdviceWrites struct {
	*journalrepo.MemoryRepository
}

func (failingAdviceWrites) SetAIResponse(context.Context, string, string) error {
	return errors.New("write failed")
}

type failingRelapses struct {
	*journalrepo.MemoryRepository
}

func (failingRelapses) LatestRelapse(context.Context, int64) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("db down")
}

func newService(repo journal.Repository, advisor journal.Advisor) journal.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return journal.NewService(repo, moodstore.NewMemoryStore(), advisor, stubAccounts{}, fixedQuote("Keep going."), logger)
}

func TestCreateStoresEntryAndAdvice(t *testing.T) {
	repo := journalrepo.NewMemoryRepository()
	advisor := &stubAdvisor{text: "Take a breath. Try a short walk.", ok: true}
	svc := newService(repo, advisor)
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, journal.CreateRequest{Mood: "  Stressed ", Notes: "deadline"})
	require.NoError(t, err)
	require.Equal(t, journal.EntryUrge, entry.Type)
	require.Equal(t, "Stressed", entry.Mood)
	require.NotEmpty(t, entry.ID)
	require.NotNil(t, entry.AIResponse)
	require.Equal(t, "Take a breath. Try a short walk.", *entry.AIResponse)
	require.Equal(t, []advice.Request{{Mood: "Stressed", Notes: "deadline"}}, advisor.calls)

	stored, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].AIResponse)
	require.Equal(t, *entry.AIResponse, *stored[0].AIResponse)
}

func TestCreateWithoutAdvice(t *testing.T) {
	svc := newService(journalrepo.NewMemoryRepository(), &stubAdvisor{})
	entry, err := svc.Create(context.Background(), 1, journal.CreateRequest{Type: journal.EntryRelapse, Mood: "Tired"})
	require.NoError(t, err)
	require.Nil(t, entry.AIResponse)
	require.Equal(t, journal.EntryRelapse, entry.Type)
}

func TestCreateKeepsAdviceWhenPersistFails(t *testing.T) {
	repo := failingAdviceWrites{journalrepo.NewMemoryRepository()}
	svc := newService(repo, &stubAdvisor{text: "Drink some water.", ok: true})

	entry, err := svc.Create(context.Background(), 1, journal.CreateRequest{Mood: "Craving"})
	require.NoError(t, err)
	require.NotNil(t, entry.AIResponse)
	require.Equal(t, "Drink some water.", *entry.AIResponse)
}

func TestCreateValidation(t *testing.T) {
	advisor := &stubAdvisor{ok: true, text: "x"}
	svc := newService(journalrepo.NewMemoryRepository(), advisor)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, journal.CreateRequest{Mood: "   "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Create(ctx, 1, journal.CreateRequest{Type: "slip", Mood: "Bored"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Empty(t, advisor.calls)
}

func TestCreateUpdatesMoodList(t *testing.T) {
	svc := newService(journalrepo.NewMemoryRepository(), &stubAdvisor{})
	ctx := context.Background()

	moods, err := svc.Moods(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, journal.DefaultMoods(), moods)

	_, err = svc.Create(ctx, 1, journal.CreateRequest{Mood: "Restless"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, journal.CreateRequest{Mood: "bored"})
	require.NoError(t, err)

	moods, err = svc.Moods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, moods, journal.MaxMoods)
	require.Equal(t, "Restless", moods[0])
	require.Equal(t, "Anxious", moods[1])

	other, err := svc.Moods(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, journal.DefaultMoods(), other)
}

func TestStreak(t *testing.T) {
	repo := journalrepo.NewMemoryRepository()
	svc := newService(repo, &stubAdvisor{})
	ctx := context.Background()
	now := joined.Add(30*24*time.Hour + time.Hour)

	streak, err := svc.Streak(ctx, 1, now)
	require.NoError(t, err)
	require.Equal(t, joined, streak.Since)
	require.Equal(t, 30, streak.Days)
	require.Equal(t, "One Month Victory!", streak.Milestone)

	relapse := now.Add(-26 * time.Hour)
	_, err = repo.Insert(ctx, journal.LogEntry{ID: "a", UserID: 1, Type: journal.EntryRelapse, Mood: "Low", CreatedAt: relapse.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, journal.LogEntry{ID: "b", UserID: 1, Type: journal.EntryRelapse, Mood: "Low", CreatedAt: relapse})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, journal.LogEntry{ID: "c", UserID: 1, Type: journal.EntryUrge, Mood: "Low", CreatedAt: now})
	require.NoError(t, err)

	streak, err = svc.Streak(ctx, 1, now)
	require.NoError(t, err)
	require.Equal(t, relapse, streak.Since)
	require.Equal(t, 1, streak.Days)
	require.Equal(t, 2, streak.Hours)
	require.Equal(t, "1 Day Strong!", streak.Milestone)
}

func TestStreakFallsBackWhenLookupFails(t *testing.T) {
	svc := newService(failingRelapses{journalrepo.NewMemoryRepository()}, &stubAdvisor{})
	streak, err := svc.Streak(context.Background(), 1, joined.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, joined, streak.Since)
	require.Equal(t, 2, streak.Hours)
}

func TestListNewestFirst(t *testing.T) {
	repo := journalrepo.NewMemoryRepository()
	svc := newService(repo, &stubAdvisor{})
	ctx := context.Background()
	for i, id := range []string{"old", "new", "mid"} {
		offset := []time.Duration{0, 2 * time.Hour, time.Hour}[i]
		_, err := repo.Insert(ctx, journal.LogEntry{ID: id, UserID: 1, Type: journal.EntryUrge, Mood: "Bored", CreatedAt: joined.Add(offset)})
		require.NoError(t, err)
	}
	entries, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "new", entries[0].ID)
	require.Equal(t, "mid", entries[1].ID)
	require.Equal(t, "old", entries[2].ID)

	empty, err := svc.List(ctx, 99)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestDashboard(t *testing.T) {
	svc := newService(journalrepo.NewMemoryRepository(), &stubAdvisor{})
	ctx := context.Background()
	_, err := svc.Create(ctx, 1, journal.CreateRequest{Mood: "Hopeful"})
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, 1, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, "Keep going.", dash.Quote)
	require.Equal(t, journal.DefaultMoods(), dash.Moods)
	require.Len(t, dash.Insights.Weekly, 7)
	require.Equal(t, 1, dash.Insights.Weekly[6].Count)
	require.Equal(t, []journal.MoodShare{{Mood: "Hopeful", Count: 1, Percent: 100}}, dash.Insights.Moods)
	require.Equal(t, joined, dash.Streak.Since)
}
