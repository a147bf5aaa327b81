// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// CardRepository defines the secondary port for card persistence.
type CardRepository interface {
	// Create persists a new card.
	Create(ctx context.Context, card *CardRecord) error

	// GetByID retrieves a card by its ID.
	GetByID(ctx context.Context, id string) (*CardRecord, error)

	// List retrieves cards matching the given filters, in creation order.
	List(ctx context.Context, filters CardFilters) ([]*CardRecord, error)

	// UpdateContent replaces content and sensitivity and bumps updated_at.
	UpdateContent(ctx context.Context, id, content, sensitivity string) error

	// UpdateCategory sets the category and bumps updated_at, even when the
	// category is unchanged.
	UpdateCategory(ctx context.Context, id, category string) error

	// Delete removes a card from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available card ID.
	GetNextID(ctx context.Context) (string, error)

	// ListBySensitivity retrieves cards at any of the given sensitivity
	// levels, in creation order.
	ListBySensitivity(ctx context.Context, levels []string) ([]*CardRecord, error)

	// MarkPublished stamps publish provenance on the given cards.
	MarkPublished(ctx context.Context, ids []string, commitSHA string) error
}

// CardRecord represents a card as stored in persistence.
type CardRecord struct {
	ID              string
	Content         string
	Category        string
	Sensitivity     string
	CreatedAt       string
	UpdatedAt       string
	LastPublishedAt string
	LastCommitSHA   string
}

// CardFilters contains filter options for querying cards.
type CardFilters struct {
	Categories []string
}

// PublishStateRepository defines the secondary port for publish provenance.
type PublishStateRepository interface {
	// Upsert creates or replaces the publish record for a repository path.
	Upsert(ctx context.Context, state *PublishStateRecord) error

	// GetByPath retrieves the publish record for a repository path.
	// Returns (nil, nil) when no publish has been recorded yet.
	GetByPath(ctx context.Context, repoPath string) (*PublishStateRecord, error)

	// AppendHistory records one publish run.
	AppendHistory(ctx context.Context, entry *PublishHistoryRecord) error

	// ListHistory retrieves publish runs for a repository, newest first.
	ListHistory(ctx context.Context, repoPath string, limit int) ([]*PublishHistoryRecord, error)
}

// PublishStateRecord is the per-repository publish record.
type PublishStateRecord struct {
	RepoPath         string
	PublishableCount int
	PublishedCount   int
	LastPublishedAt  string
	LastCommitSHA    string
}

// PublishHistoryRecord is one recorded publish run.
type PublishHistoryRecord struct {
	ID             string
	RepoPath       string
	CommitSHA      string
	CardsPublished int
	Pushed         bool
	Message        string
	CreatedAt      string
}
