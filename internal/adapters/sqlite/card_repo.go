// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/ports/secondary"
)

// CardRepository implements secondary.CardRepository with SQLite.
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new SQLite card repository.
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = "id, content, category, sensitivity, created_at, updated_at, last_published_at, last_commit_sha"

// Create persists a new card.
func (r *CardRepository) Create(ctx context.Context, card *secondary.CardRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cards (id, content, category, sensitivity) VALUES (?, ?, ?, ?)",
		card.ID, card.Content, card.Category, card.Sensitivity,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// GetByID retrieves a card by its ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*secondary.CardRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE id = ?",
		id,
	)

	record, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card %s: %w", id, primary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return record, nil
}

// List retrieves cards matching the given filters, in creation order.
func (r *CardRepository) List(ctx context.Context, filters secondary.CardFilters) ([]*secondary.CardRecord, error) {
	query := "SELECT " + cardColumns + " FROM cards"
	args := []any{}

	if len(filters.Categories) > 0 {
		placeholders := make([]string, len(filters.Categories))
		for i, c := range filters.Categories {
			placeholders[i] = "?"
			args = append(args, c)
		}
		query += " WHERE category IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY created_at ASC, id ASC"

	return r.queryCards(ctx, query, args...)
}

// ListBySensitivity retrieves cards at any of the given levels, in creation order.
func (r *CardRepository) ListBySensitivity(ctx context.Context, levels []string) ([]*secondary.CardRecord, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(levels))
	args := make([]any, len(levels))
	for i, l := range levels {
		placeholders[i] = "?"
		args[i] = l
	}

	query := "SELECT " + cardColumns + " FROM cards WHERE sensitivity IN (" +
		strings.Join(placeholders, ", ") + ") ORDER BY created_at ASC, id ASC"

	return r.queryCards(ctx, query, args...)
}

// UpdateContent replaces content and sensitivity and bumps updated_at.
func (r *CardRepository) UpdateContent(ctx context.Context, id, content, sensitivity string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cards SET content = ?, sensitivity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		content, sensitivity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card content: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("card %s: %w", id, primary.ErrNotFound)
	}

	return nil
}

// UpdateCategory sets the category and bumps updated_at. A move to the
// current category is still a successful update.
func (r *CardRepository) UpdateCategory(ctx context.Context, id, category string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cards SET category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		category, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card category: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("card %s: %w", id, primary.ErrNotFound)
	}

	return nil
}

// Delete removes a card from persistence.
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("card %s: %w", id, primary.ErrNotFound)
	}

	return nil
}

// GetNextID returns the next available card ID.
func (r *CardRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM cards",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next card ID: %w", err)
	}

	return fmt.Sprintf("CARD-%03d", maxID+1), nil
}

// MarkPublished stamps publish provenance on the given cards.
func (r *CardRepository) MarkPublished(ctx context.Context, ids []string, commitSHA string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := []any{commitSHA}
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE cards SET last_published_at = CURRENT_TIMESTAMP, last_commit_sha = ? WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to mark cards published: %w", err)
	}

	return nil
}

func (r *CardRepository) queryCards(ctx context.Context, query string, args ...any) ([]*secondary.CardRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*secondary.CardRecord
	for rows.Next() {
		record, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, record)
	}

	return cards, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner) (*secondary.CardRecord, error) {
	var (
		createdAt       time.Time
		updatedAt       time.Time
		lastPublishedAt sql.NullTime
		lastCommitSHA   sql.NullString
	)

	record := &secondary.CardRecord{}
	err := s.Scan(&record.ID, &record.Content, &record.Category, &record.Sensitivity, &createdAt, &updatedAt, &lastPublishedAt, &lastCommitSHA)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if lastPublishedAt.Valid {
		record.LastPublishedAt = lastPublishedAt.Time.Format(time.RFC3339)
	}
	record.LastCommitSHA = lastCommitSHA.String

	return record, nil
}

// Ensure CardRepository implements the interface
var _ secondary.CardRepository = (*CardRepository)(nil)
