package journal

import (
	"context"
	"time"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/domain/auth"
)

// Repository persists journal entries.
type Repository interface {
	Insert(ctx context.Context, entry LogEntry) (LogEntry, error)
	// ListByUser returns entries newest first.
	ListByUser(ctx context.Context, userID int64) ([]LogEntry, error)
	SetAIResponse(ctx context.Context, entryID string, advice string) error
	LatestRelapse(ctx context.Context, userID int64) (time.Time, bool, error)
}

// MoodStore keeps the personalised mood list per user.
type MoodStore interface {
	Load(ctx context.Context, userID int64) ([]string, bool, error)
	Save(ctx context.Context, userID int64, moods []string) error
}

// Advisor is the part of the advice domain journal depends on.
type Advisor interface {
	RequestAdvice(ctx context.Context, req advice.Request) (string, bool)
}

// AccountDirectory resolves account creation time for streaks.
type AccountDirectory interface {
	Account(ctx context.Context, userID int64) (auth.Account, error)
}

// QuoteSource supplies the dashboard quote.
type QuoteSource interface {
	DailyQuote() string
}
