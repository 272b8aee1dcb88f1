package journal

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/mindmend/internal/domain/advice"
	apperrors "github.com/yanqian/mindmend/pkg/errors"
	"github.com/yanqian/mindmend/pkg/util"
)

// Service records urges and relapses and derives progress from them.
type Service interface {
	Create(ctx context.Context, userID int64, req CreateRequest) (LogEntry, error)
	List(ctx context.Context, userID int64) ([]LogEntry, error)
	Streak(ctx context.Context, userID int64, now time.Time) (Streak, error)
	Insights(ctx context.Context, userID int64, now time.Time) (Insights, error)
	Moods(ctx context.Context, userID int64) ([]string, error)
	Dashboard(ctx context.Context, userID int64, now time.Time) (Dashboard, error)
}

type service struct {
	repo     Repository
	moods    MoodStore
	advisor  Advisor
	accounts AccountDirectory
	quotes   QuoteSource
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires the journal domain.
func NewService(repo Repository, moods MoodStore, advisor Advisor, accounts AccountDirectory, quotes QuoteSource, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		moods:    moods,
		advisor:  advisor,
		accounts: accounts,
		quotes:   quotes,
		logger:   logger.With("component", "journal.service"),
		now:      util.NowUTC,
		newID:    func() string { return uuid.NewString() },
	}
}

// Create stores the entry, then asks for advice. Mood list and advice
// persistence failures never fail the request.
func (s *service) Create(ctx context.Context, userID int64, req CreateRequest) (LogEntry, error) {
	entryType := req.Type
	if entryType == "" {
		entryType = EntryUrge
	}
	if !entryType.Valid() {
		return LogEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "type must be urge or relapse", nil)
	}
	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		return LogEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "mood is required", nil)
	}

	entry, err := s.repo.Insert(ctx, LogEntry{
		ID:        s.newID(),
		UserID:    userID,
		Type:      entryType,
		Mood:      mood,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: s.now(),
	})
	if err != nil {
		return LogEntry{}, apperrors.Wrap(apperrors.CodeJournalError, "failed to save entry", err)
	}
	s.logger.Info("journal entry saved", "user_id", userID, "entry_id", entry.ID, "type", entry.Type)

	s.rememberMood(ctx, userID, mood)

	if s.advisor == nil {
		return entry, nil
	}
	text, ok := s.advisor.RequestAdvice(ctx, advice.Request{Mood: entry.Mood, Notes: entry.Notes})
	if !ok {
		return entry, nil
	}
	entry.AIResponse = &text
	if err := s.repo.SetAIResponse(ctx, entry.ID, text); err != nil {
		s.logger.Error("failed to persist advice", "entry_id", entry.ID, "error", err)
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]LogEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeJournalError, "failed to list entries", err)
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	return entries, nil
}

// Streak counts from the newest relapse, or from account creation when there
// is none or the lookup fails.
func (s *service) Streak(ctx context.Context, userID int64, now time.Time) (Streak, error) {
	since, found, err := s.repo.LatestRelapse(ctx, userID)
	if err != nil {
		s.logger.Warn("relapse lookup failed, using account creation", "user_id", userID, "error", err)
		found = false
	}
	if !found {
		account, err := s.accounts.Account(ctx, userID)
		if err != nil {
			return Streak{}, err
		}
		since = account.CreatedAt
	}
	return ComputeStreak(since, now), nil
}

func (s *service) Insights(ctx context.Context, userID int64, now time.Time) (Insights, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return Insights{}, err
	}
	return BuildInsights(entries, now), nil
}

func (s *service) Moods(ctx context.Context, userID int64) ([]string, error) {
	moods, found, err := s.moods.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeJournalError, "failed to load moods", err)
	}
	if !found || len(moods) == 0 {
		return DefaultMoods(), nil
	}
	return moods, nil
}

func (s *service) Dashboard(ctx context.Context, userID int64, now time.Time) (Dashboard, error) {
	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		streak, err := s.Streak(gctx, userID, now)
		out.Streak = streak
		return err
	})
	g.Go(func() error {
		insights, err := s.Insights(gctx, userID, now)
		out.Insights = insights
		return err
	})
	g.Go(func() error {
		moods, err := s.Moods(gctx, userID)
		out.Moods = moods
		return err
	})
	if s.quotes != nil {
		out.Quote = s.quotes.DailyQuote()
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}

func (s *service) rememberMood(ctx context.Context, userID int64, mood string) {
	current, err := s.Moods(ctx, userID)
	if err != nil {
		s.logger.Warn("mood list unavailable", "user_id", userID, "error", err)
		return
	}
	updated, changed := AddMood(current, mood)
	if !changed {
		return
	}
	if err := s.moods.Save(ctx, userID, updated); err != nil {
		s.logger.Warn("failed to save mood list", "user_id", userID, "error", err)
	}
}
