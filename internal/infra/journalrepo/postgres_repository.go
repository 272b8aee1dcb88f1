package journalrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/mindmend/internal/domain/journal"
)

// PostgresRepository stores entries in the logs table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry journal.LogEntry) (journal.LogEntry, error) {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return journal.LogEntry{}, fmt.Errorf("entry id: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO logs (id, user_id, type, mood, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, type, mood, notes, ai_response, created_at
	`, id, entry.UserID, string(entry.Type), entry.Mood, entry.Notes, entry.CreatedAt)
	return scanEntry(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]journal.LogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, mood, notes, ai_response, created_at
		FROM logs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []journal.LogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PostgresRepository) SetAIResponse(ctx context.Context, entryID string, advice string) error {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return fmt.Errorf("entry id: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `UPDATE logs SET ai_response = $2 WHERE id = $1`, id, advice)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s not found", entryID)
	}
	return nil
}

func (r *PostgresRepository) LatestRelapse(ctx context.Context, userID int64) (time.Time, bool, error) {
	var at time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT created_at
		FROM logs
		WHERE user_id = $1 AND type = 'relapse'
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return at.UTC(), true, nil
}

func scanEntry(row pgx.Row) (journal.LogEntry, error) {
	var (
		entry     journal.LogEntry
		id        uuid.UUID
		entryType string
	)
	if err := row.Scan(&id, &entry.UserID, &entryType, &entry.Mood, &entry.Notes, &entry.AIResponse, &entry.CreatedAt); err != nil {
		return journal.LogEntry{}, err
	}
	entry.ID = id.String()
	entry.Type = journal.EntryType(entryType)
	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry, nil
}

var _ journal.Repository = (*PostgresRepository)(nil)
