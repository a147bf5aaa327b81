package primary

import "context"

// PublishService defines the primary port for the publish gate.
type PublishService interface {
	// Initialize creates or opens a publish repository at path. Idempotent.
	Initialize(ctx context.Context, path string) (*InitializeResult, error)

	// Status combines a live publishable count with the last recorded
	// publish for the repository. Never blocks on an in-flight publish.
	Status(ctx context.Context, path string) (*PublishStatus, error)

	// Publish serializes all publishable cards into the repository,
	// commits, and optionally pushes. A push failure leaves the local
	// commit standing and is reported via ErrPushFailed alongside a valid
	// result.
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)

	// History lists past publish runs for the repository, newest first.
	History(ctx context.Context, path string, limit int) ([]*PublishHistoryEntry, error)
}

// PublishRequest contains parameters for a publish run.
type PublishRequest struct {
	Path    string
	Message string
	Push    bool
	Remote  string
	Branch  string
}

// PublishResult contains the outcome of a publish run.
type PublishResult struct {
	CardsPublished int
	CommitSHA      string
	NewCommit      bool
	Pushed         bool
	Timestamp      string
}

// InitializeResult reports whether Initialize created a new repository.
type InitializeResult struct {
	Path    string
	Created bool
}

// PublishStatus is the per-repository publish record plus a live count.
type PublishStatus struct {
	RepoPath         string
	PublishableCount int
	PublishedCount   int
	LastPublishedAt  string
	LastCommitSHA    string
}

// PublishHistoryEntry is one recorded publish run.
type PublishHistoryEntry struct {
	ID             string
	RepoPath       string
	CommitSHA      string
	CardsPublished int
	Pushed         bool
	Message        string
	CreatedAt      string
}
