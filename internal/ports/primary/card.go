package primary

import "context"

// CardService defines the primary port for card operations.
type CardService interface {
	// CreateCard classifies content and stores a new card.
	CreateCard(ctx context.Context, req CreateCardRequest) (*CreateCardResponse, error)

	// GetCard retrieves a card by ID.
	GetCard(ctx context.Context, cardID string) (*Card, error)

	// ListCards lists cards with optional category filters.
	ListCards(ctx context.Context, filters CardFilters) ([]*Card, error)

	// UpdateContent replaces a card's content and re-classifies it.
	UpdateContent(ctx context.Context, req UpdateContentRequest) (*Card, error)

	// MoveCategory moves a card to a workflow category. Moving to the
	// current category succeeds and still bumps the updated timestamp.
	MoveCategory(ctx context.Context, req MoveCategoryRequest) (*Card, error)

	// DeleteCard deletes a card. Prior publish commits are not rewritten.
	DeleteCard(ctx context.Context, cardID string) error

	// GetPublishable returns cards whose sensitivity level permits
	// publishing, in creation order. This is the only eligibility read
	// path the publish gate may use.
	GetPublishable(ctx context.Context) ([]*Card, error)

	// ScanContent returns the full match breakdown and resulting level for
	// arbitrary text without storing anything.
	ScanContent(ctx context.Context, text string) (*ScanResult, error)
}

// CreateCardRequest contains parameters for creating a card.
type CreateCardRequest struct {
	Content string
}

// CreateCardResponse contains the result of creating a card.
type CreateCardResponse struct {
	CardID string
	Card   *Card
}

// UpdateContentRequest contains parameters for editing card content.
type UpdateContentRequest struct {
	CardID  string
	Content string
}

// MoveCategoryRequest contains parameters for a category transition.
type MoveCategoryRequest struct {
	CardID   string
	Category string
}

// Card represents a card entity at the port boundary.
type Card struct {
	ID              string
	Content         string
	Category        string
	Sensitivity     string
	CreatedAt       string
	UpdatedAt       string
	LastPublishedAt string
	LastCommitSHA   string
}

// CardFilters contains filter options for listing cards. An empty filter
// returns all cards.
type CardFilters struct {
	Categories []string
}

// ScanResult is the classifier breakdown for a piece of text.
type ScanResult struct {
	Level   string
	Matches []ScanMatch
}

// ScanMatch is a single rule hit, ordered by start offset.
type ScanMatch struct {
	Type        string
	Level       string
	Text        string
	Start       int
	End         int
	Description string
}

// Workflow category constants. Categories are orthogonal to sensitivity.
const (
	CategoryUnassimilated = "unassimilated"
	CategoryProgram       = "program"
	CategoryCategorized   = "categorized"
	CategoryGrit          = "grit"
	CategoryTough         = "tough"
	CategoryJunk          = "junk"
)

// Categories lists the six workflow categories in board order.
var Categories = []string{
	CategoryUnassimilated,
	CategoryProgram,
	CategoryCategorized,
	CategoryGrit,
	CategoryTough,
	CategoryJunk,
}

// ValidCategory reports whether category is one of the six board columns.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
