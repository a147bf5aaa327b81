package app

import (
	"context"
	"fmt"

	"github.com/example/vaultboard/internal/core/classify"
	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/ports/secondary"
)

// CardServiceImpl implements the CardService interface. Sensitivity is
// always derived from a classification pass over current content; no caller
// can set it directly.
type CardServiceImpl struct {
	cardRepo secondary.CardRepository
}

// NewCardService creates a new CardService with injected dependencies.
func NewCardService(cardRepo secondary.CardRepository) *CardServiceImpl {
	return &CardServiceImpl{
		cardRepo: cardRepo,
	}
}

// CreateCard classifies content and stores a new card in the unassimilated
// category.
func (s *CardServiceImpl) CreateCard(ctx context.Context, req primary.CreateCardRequest) (*primary.CreateCardResponse, error) {
	level := classify.Classify(req.Content)

	nextID, err := s.cardRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate card ID: %w", err)
	}

	record := &secondary.CardRecord{
		ID:          nextID,
		Content:     req.Content,
		Category:    primary.CategoryUnassimilated,
		Sensitivity: string(level),
	}

	if err := s.cardRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	created, err := s.cardRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created card: %w", err)
	}

	return &primary.CreateCardResponse{
		CardID: created.ID,
		Card:   s.recordToCard(created),
	}, nil
}

// GetCard retrieves a card by ID.
func (s *CardServiceImpl) GetCard(ctx context.Context, cardID string) (*primary.Card, error) {
	record, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.recordToCard(record), nil
}

// ListCards lists cards with optional category filters.
func (s *CardServiceImpl) ListCards(ctx context.Context, filters primary.CardFilters) ([]*primary.Card, error) {
	for _, c := range filters.Categories {
		if !primary.ValidCategory(c) {
			return nil, fmt.Errorf("invalid category: %s", c)
		}
	}

	records, err := s.cardRepo.List(ctx, secondary.CardFilters{
		Categories: filters.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]*primary.Card, len(records))
	for i, r := range records {
		cards[i] = s.recordToCard(r)
	}
	return cards, nil
}

// UpdateContent replaces a card's content. The stored sensitivity level is
// recomputed from the new content on every edit - never carried over.
func (s *CardServiceImpl) UpdateContent(ctx context.Context, req primary.UpdateContentRequest) (*primary.Card, error) {
	level := classify.Classify(req.Content)

	if err := s.cardRepo.UpdateContent(ctx, req.CardID, req.Content, string(level)); err != nil {
		return nil, err
	}

	record, err := s.cardRepo.GetByID(ctx, req.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated card: %w", err)
	}
	return s.recordToCard(record), nil
}

// MoveCategory moves a card to a workflow category. Moving to the current
// category is a valid no-op that still bumps the updated timestamp.
func (s *CardServiceImpl) MoveCategory(ctx context.Context, req primary.MoveCategoryRequest) (*primary.Card, error) {
	if !primary.ValidCategory(req.Category) {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}

	if err := s.cardRepo.UpdateCategory(ctx, req.CardID, req.Category); err != nil {
		return nil, err
	}

	record, err := s.cardRepo.GetByID(ctx, req.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moved card: %w", err)
	}
	return s.recordToCard(record), nil
}

// DeleteCard deletes a card. Publish history referencing the card stays as
// recorded provenance.
func (s *CardServiceImpl) DeleteCard(ctx context.Context, cardID string) error {
	return s.cardRepo.Delete(ctx, cardID)
}

// GetPublishable returns cards whose sensitivity level permits publishing,
// in creation order. Eligibility is decided by sensitivity alone - category
// is a workflow position, not a security classification.
func (s *CardServiceImpl) GetPublishable(ctx context.Context) ([]*primary.Card, error) {
	records, err := s.cardRepo.ListBySensitivity(ctx, []string{
		string(classify.LevelBusiness),
		string(classify.LevelIdeas),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list publishable cards: %w", err)
	}

	cards := make([]*primary.Card, len(records))
	for i, r := range records {
		cards[i] = s.recordToCard(r)
	}
	return cards, nil
}

// ScanContent returns the full classifier breakdown for arbitrary text.
func (s *CardServiceImpl) ScanContent(ctx context.Context, text string) (*primary.ScanResult, error) {
	matches := classify.Scan(text)
	level := classify.Classify(text)

	result := &primary.ScanResult{
		Level:   string(level),
		Matches: make([]primary.ScanMatch, len(matches)),
	}
	for i, m := range matches {
		result.Matches[i] = primary.ScanMatch{
			Type:        m.Type,
			Level:       string(m.Level),
			Text:        m.Text,
			Start:       m.Start,
			End:         m.End,
			Description: m.Description,
		}
	}
	return result, nil
}

// Helper methods

func (s *CardServiceImpl) recordToCard(r *secondary.CardRecord) *primary.Card {
	return &primary.Card{
		ID:              r.ID,
		Content:         r.Content,
		Category:        r.Category,
		Sensitivity:     r.Sensitivity,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		LastPublishedAt: r.LastPublishedAt,
		LastCommitSHA:   r.LastCommitSHA,
	}
}

// Ensure CardServiceImpl implements the interface
var _ primary.CardService = (*CardServiceImpl)(nil)
