package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/vaultboard/internal/core/classify"
	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/ports/secondary"
)

// gitClient is the subset of GitService the publish gate needs. Narrowing
// to an interface keeps the publish flow testable without a git binary.
type gitClient interface {
	IsRepository(path string) bool
	Init(path string) error
	Head(path string) (string, error)
	IsDirty(path string) (bool, error)
	Add(path, spec string) error
	Commit(path, message string) error
	Push(path, remote, branch string) error
}

// PublishServiceImpl implements the PublishService interface. It is the only
// component allowed to move card content off the local store, and only
// through the publishable read path.
type PublishServiceImpl struct {
	cardService primary.CardService
	cardRepo    secondary.CardRepository
	stateRepo   secondary.PublishStateRepository
	git         gitClient

	mu       sync.Mutex
	inflight map[string]bool
}

// NewPublishService creates a new PublishService with injected dependencies.
func NewPublishService(cardService primary.CardService, cardRepo secondary.CardRepository, stateRepo secondary.PublishStateRepository, git gitClient) *PublishServiceImpl {
	return &PublishServiceImpl{
		cardService: cardService,
		cardRepo:    cardRepo,
		stateRepo:   stateRepo,
		git:         git,
		inflight:    make(map[string]bool),
	}
}

// Initialize creates or opens a publish repository at path. Calling it on an
// already-initialized path succeeds without side effects.
func (s *PublishServiceImpl) Initialize(ctx context.Context, path string) (*primary.InitializeResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	result := &primary.InitializeResult{Path: abs}

	if s.git.IsRepository(abs) {
		return result, nil
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create repository directory: %w", err)
	}
	if err := s.git.Init(abs); err != nil {
		return nil, err
	}
	result.Created = true

	// Seed the publish record so status has something to report before the
	// first publish.
	state, err := s.stateRepo.GetByPath(ctx, abs)
	if err != nil {
		return nil, err
	}
	if state == nil {
		if err := s.stateRepo.Upsert(ctx, &secondary.PublishStateRecord{RepoPath: abs}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Status combines a live publishable count with the last recorded publish.
// It never takes the publish lock.
func (s *PublishServiceImpl) Status(ctx context.Context, path string) (*primary.PublishStatus, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if !s.git.IsRepository(abs) {
		return nil, fmt.Errorf("%s: %w", abs, primary.ErrRepositoryUninitialized)
	}

	publishable, err := s.cardService.GetPublishable(ctx)
	if err != nil {
		return nil, err
	}

	status := &primary.PublishStatus{
		RepoPath:         abs,
		PublishableCount: len(publishable),
	}

	state, err := s.stateRepo.GetByPath(ctx, abs)
	if err != nil {
		return nil, err
	}
	if state != nil {
		status.PublishedCount = state.PublishedCount
		status.LastPublishedAt = state.LastPublishedAt
		status.LastCommitSHA = state.LastCommitSHA
	}

	return status, nil
}

// Publish serializes all publishable cards into the repository, commits, and
// optionally pushes. Failures before the commit leave the repository
// unchanged; a push failure leaves the local commit standing and is reported
// via ErrPushFailed alongside the result.
func (s *PublishServiceImpl) Publish(ctx context.Context, req primary.PublishRequest) (*primary.PublishResult, error) {
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if !s.git.IsRepository(abs) {
		return nil, fmt.Errorf("%s: %w", abs, primary.ErrRepositoryUninitialized)
	}

	if !s.acquire(abs) {
		return nil, fmt.Errorf("%s: %w", abs, primary.ErrAlreadyPublishing)
	}
	defer s.release(abs)

	cards, err := s.cardService.GetPublishable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publishable cards: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if len(cards) == 0 {
		// A no-op publish is not an error.
		head, err := s.git.Head(abs)
		if err != nil {
			return nil, err
		}
		return &primary.PublishResult{CommitSHA: head, Timestamp: now}, nil
	}

	// Invariant re-check, independent of the eligibility filter above. This
	// is deliberate defense-in-depth: even a defective read path must not
	// put restricted content into the working tree.
	for _, card := range cards {
		if !classify.Level(card.Sensitivity).Publishable() {
			log.Printf("defect: card %s with sensitivity %s reached the publish gate", card.ID, card.Sensitivity)
			return nil, fmt.Errorf("card %s has sensitivity %s: %w", card.ID, card.Sensitivity, primary.ErrInvariantViolation)
		}
	}

	cardsDir := filepath.Join(abs, "cards")
	if err := os.MkdirAll(cardsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cards directory: %w", err)
	}

	ids := make([]string, len(cards))
	prior := make(map[string][]byte)
	var written []string
	for i, card := range cards {
		ids[i] = card.ID
		artifact := filepath.Join(cardsDir, card.ID+".md")
		if data, err := os.ReadFile(artifact); err == nil {
			prior[artifact] = data
		}
		if err := os.WriteFile(artifact, []byte(serializeCard(card)), 0644); err != nil {
			restoreArtifacts(written, prior)
			return nil, fmt.Errorf("card %s: %v: %w", card.ID, err, primary.ErrSerializationFailed)
		}
		written = append(written, artifact)
	}

	dirty, err := s.git.IsDirty(abs)
	if err != nil {
		return nil, err
	}

	result := &primary.PublishResult{
		CardsPublished: len(cards),
		Timestamp:      now,
	}

	if dirty {
		if err := s.git.Add(abs, "."); err != nil {
			return nil, fmt.Errorf("%v: %w", err, primary.ErrCommitFailed)
		}
		message := req.Message
		if message == "" {
			message = fmt.Sprintf("Publish %d cards", len(cards))
		}
		if err := s.git.Commit(abs, message); err != nil {
			return nil, fmt.Errorf("%v: %w", err, primary.ErrCommitFailed)
		}
		result.NewCommit = true
	}

	head, err := s.git.Head(abs)
	if err != nil {
		return nil, err
	}
	result.CommitSHA = head

	if result.NewCommit {
		if err := s.cardRepo.MarkPublished(ctx, ids, head); err != nil {
			return nil, fmt.Errorf("failed to record card provenance: %w", err)
		}
	}

	var pushErr error
	if req.Push {
		remote, branch := req.Remote, req.Branch
		if remote == "" {
			remote = "origin"
		}
		if branch == "" {
			branch = "main"
		}
		if err := s.git.Push(abs, remote, branch); err != nil {
			// The local commit stands; report the push separately.
			pushErr = fmt.Errorf("%v: %w", err, primary.ErrPushFailed)
		} else {
			result.Pushed = true
		}
	}

	if err := s.stateRepo.Upsert(ctx, &secondary.PublishStateRecord{
		RepoPath:         abs,
		PublishableCount: len(cards),
		PublishedCount:   len(cards),
		LastPublishedAt:  now,
		LastCommitSHA:    head,
	}); err != nil {
		return nil, fmt.Errorf("failed to update publish state: %w", err)
	}

	if err := s.stateRepo.AppendHistory(ctx, &secondary.PublishHistoryRecord{
		ID:             uuid.NewString(),
		RepoPath:       abs,
		CommitSHA:      head,
		CardsPublished: len(cards),
		Pushed:         result.Pushed,
		Message:        req.Message,
	}); err != nil {
		return nil, fmt.Errorf("failed to record publish history: %w", err)
	}

	return result, pushErr
}

// History lists past publish runs for the repository, newest first.
func (s *PublishServiceImpl) History(ctx context.Context, path string, limit int) ([]*primary.PublishHistoryEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	records, err := s.stateRepo.ListHistory(ctx, abs, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*primary.PublishHistoryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.PublishHistoryEntry{
			ID:             r.ID,
			RepoPath:       r.RepoPath,
			CommitSHA:      r.CommitSHA,
			CardsPublished: r.CardsPublished,
			Pushed:         r.Pushed,
			Message:        r.Message,
			CreatedAt:      r.CreatedAt,
		}
	}
	return entries, nil
}

// restoreArtifacts undoes a partial serialization pass. Files that existed
// before the run are put back to their previous content so the working tree
// keeps matching HEAD; files new this run are removed.
func restoreArtifacts(written []string, prior map[string][]byte) {
	for _, w := range written {
		if data, ok := prior[w]; ok {
			_ = os.WriteFile(w, data, 0644)
		} else {
			_ = os.Remove(w)
		}
	}
}

// acquire marks a publish in flight for the repository. Returns false if one
// is already running.
func (s *PublishServiceImpl) acquire(repoPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[repoPath] {
		return false
	}
	s.inflight[repoPath] = true
	return true
}

func (s *PublishServiceImpl) release(repoPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, repoPath)
}

// serializeCard renders a card as a markdown artifact. Naming is
// deterministic by card ID, so re-publishing overwrites rather than
// duplicates.
func serializeCard(card *primary.Card) string {
	return fmt.Sprintf(`---
id: %s
category: %s
sensitivity: %s
created_at: %s
updated_at: %s
---

%s
`, card.ID, card.Category, card.Sensitivity, card.CreatedAt, card.UpdatedAt, card.Content)
}

// Ensure PublishServiceImpl implements the interface
var _ primary.PublishService = (*PublishServiceImpl)(nil)
