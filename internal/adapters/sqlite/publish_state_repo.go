package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vaultboard/internal/ports/secondary"
)

// PublishStateRepository implements secondary.PublishStateRepository with SQLite.
type PublishStateRepository struct {
	db *sql.DB
}

// NewPublishStateRepository creates a new SQLite publish state repository.
func NewPublishStateRepository(db *sql.DB) *PublishStateRepository {
	return &PublishStateRepository{db: db}
}

// Upsert creates or replaces the publish record for a repository path.
func (r *PublishStateRepository) Upsert(ctx context.Context, state *secondary.PublishStateRecord) error {
	var lastPublishedAt sql.NullString
	if state.LastPublishedAt != "" {
		lastPublishedAt = sql.NullString{String: state.LastPublishedAt, Valid: true}
	}
	var lastCommitSHA sql.NullString
	if state.LastCommitSHA != "" {
		lastCommitSHA = sql.NullString{String: state.LastCommitSHA, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO publish_state (repo_path, publishable_count, published_count, last_published_at, last_commit_sha, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(repo_path) DO UPDATE SET
			publishable_count = excluded.publishable_count,
			published_count = excluded.published_count,
			last_published_at = COALESCE(excluded.last_published_at, publish_state.last_published_at),
			last_commit_sha = COALESCE(excluded.last_commit_sha, publish_state.last_commit_sha),
			updated_at = CURRENT_TIMESTAMP`,
		state.RepoPath, state.PublishableCount, state.PublishedCount, lastPublishedAt, lastCommitSHA,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert publish state: %w", err)
	}

	return nil
}

// GetByPath retrieves the publish record for a repository path.
// Returns (nil, nil) when no publish has been recorded yet.
func (r *PublishStateRepository) GetByPath(ctx context.Context, repoPath string) (*secondary.PublishStateRecord, error) {
	var (
		lastPublishedAt sql.NullString
		lastCommitSHA   sql.NullString
	)

	record := &secondary.PublishStateRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT repo_path, publishable_count, published_count, last_published_at, last_commit_sha FROM publish_state WHERE repo_path = ?",
		repoPath,
	).Scan(&record.RepoPath, &record.PublishableCount, &record.PublishedCount, &lastPublishedAt, &lastCommitSHA)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get publish state: %w", err)
	}

	record.LastPublishedAt = lastPublishedAt.String
	record.LastCommitSHA = lastCommitSHA.String

	return record, nil
}

// AppendHistory records one publish run.
func (r *PublishStateRepository) AppendHistory(ctx context.Context, entry *secondary.PublishHistoryRecord) error {
	var commitSHA sql.NullString
	if entry.CommitSHA != "" {
		commitSHA = sql.NullString{String: entry.CommitSHA, Valid: true}
	}

	pushed := 0
	if entry.Pushed {
		pushed = 1
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO publish_history (id, repo_path, commit_sha, cards_published, pushed, message) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.RepoPath, commitSHA, entry.CardsPublished, pushed, entry.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to append publish history: %w", err)
	}

	return nil
}

// ListHistory retrieves publish runs for a repository, newest first.
func (r *PublishStateRepository) ListHistory(ctx context.Context, repoPath string, limit int) ([]*secondary.PublishHistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, repo_path, commit_sha, cards_published, pushed, message, created_at FROM publish_history WHERE repo_path = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		repoPath, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list publish history: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.PublishHistoryRecord
	for rows.Next() {
		var (
			commitSHA sql.NullString
			message   sql.NullString
			pushed    int
			createdAt time.Time
		)

		record := &secondary.PublishHistoryRecord{}
		err := rows.Scan(&record.ID, &record.RepoPath, &commitSHA, &record.CardsPublished, &pushed, &message, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publish history: %w", err)
		}

		record.CommitSHA = commitSHA.String
		record.Pushed = pushed == 1
		record.Message = message.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Ensure PublishStateRepository implements the interface
var _ secondary.PublishStateRepository = (*PublishStateRepository)(nil)
