package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/vaultboard/internal/ports/primary"
	"github.com/example/vaultboard/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// fakeGit implements gitClient without a git binary. It snapshots the file
// tree on every commit so IsDirty can compare against the last commit.
type fakeGit struct {
	initialized map[string]bool
	trees       map[string]map[string]string
	commits     int
	head        string
	pushes      int
	pushErr     error
	commitErr   error
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		initialized: make(map[string]bool),
		trees:       make(map[string]map[string]string),
	}
}

func (g *fakeGit) IsRepository(path string) bool {
	return g.initialized[path]
}

func (g *fakeGit) Init(path string) error {
	g.initialized[path] = true
	return nil
}

func (g *fakeGit) Head(path string) (string, error) {
	return g.head, nil
}

func (g *fakeGit) IsDirty(path string) (bool, error) {
	current := snapshotTree(path)
	committed := g.trees[path]
	if len(current) != len(committed) {
		return true, nil
	}
	for p, content := range current {
		if committed[p] != content {
			return true, nil
		}
	}
	return false, nil
}

func (g *fakeGit) Add(path, spec string) error { return nil }

func (g *fakeGit) Commit(path, message string) error {
	if g.commitErr != nil {
		return g.commitErr
	}
	g.trees[path] = snapshotTree(path)
	g.commits++
	g.head = fmt.Sprintf("%040d", g.commits)
	return nil
}

func (g *fakeGit) Push(path, remote, branch string) error {
	if g.pushErr != nil {
		return g.pushErr
	}
	g.pushes++
	return nil
}

func snapshotTree(root string) map[string]string {
	tree := map[string]string{}
	_ = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err == nil {
			tree[p] = string(data)
		}
		return nil
	})
	return tree
}

var _ gitClient = (*fakeGit)(nil)

// mockPublishStateRepository implements secondary.PublishStateRepository.
type mockPublishStateRepository struct {
	states  map[string]*secondary.PublishStateRecord
	history []*secondary.PublishHistoryRecord
}

func newMockPublishStateRepository() *mockPublishStateRepository {
	return &mockPublishStateRepository{states: make(map[string]*secondary.PublishStateRecord)}
}

func (m *mockPublishStateRepository) Upsert(ctx context.Context, state *secondary.PublishStateRecord) error {
	s := *state
	if prev, ok := m.states[s.RepoPath]; ok {
		if s.LastCommitSHA == "" {
			s.LastCommitSHA = prev.LastCommitSHA
		}
		if s.LastPublishedAt == "" {
			s.LastPublishedAt = prev.LastPublishedAt
		}
	}
	m.states[s.RepoPath] = &s
	return nil
}

func (m *mockPublishStateRepository) GetByPath(ctx context.Context, repoPath string) (*secondary.PublishStateRecord, error) {
	if s, ok := m.states[repoPath]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (m *mockPublishStateRepository) AppendHistory(ctx context.Context, entry *secondary.PublishHistoryRecord) error {
	e := *entry
	m.history = append(m.history, &e)
	return nil
}

func (m *mockPublishStateRepository) ListHistory(ctx context.Context, repoPath string, limit int) ([]*secondary.PublishHistoryRecord, error) {
	var result []*secondary.PublishHistoryRecord
	for i := len(m.history) - 1; i >= 0 && len(result) < limit; i-- {
		if m.history[i].RepoPath == repoPath {
			result = append(result, m.history[i])
		}
	}
	return result, nil
}

var _ secondary.PublishStateRepository = (*mockPublishStateRepository)(nil)

// publishableOverride wraps a CardService and substitutes the publishable
// set, simulating a defective eligibility read path.
type publishableOverride struct {
	primary.CardService
	cards []*primary.Card
}

func (p *publishableOverride) GetPublishable(ctx context.Context) ([]*primary.Card, error) {
	return p.cards, nil
}

// ============================================================================
// Test helpers
// ============================================================================

type publishFixture struct {
	service   *PublishServiceImpl
	cards     *CardServiceImpl
	cardRepo  *mockCardRepository
	stateRepo *mockPublishStateRepository
	git       *fakeGit
	repoPath  string
}

func newPublishFixture(t *testing.T) *publishFixture {
	t.Helper()

	cardRepo := newMockCardRepository()
	stateRepo := newMockPublishStateRepository()
	git := newFakeGit()
	cards := NewCardService(cardRepo)
	service := NewPublishService(cards, cardRepo, stateRepo, git)

	repoPath, err := filepath.Abs(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	if _, err := service.Initialize(context.Background(), repoPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	return &publishFixture{
		service:   service,
		cards:     cards,
		cardRepo:  cardRepo,
		stateRepo: stateRepo,
		git:       git,
		repoPath:  repoPath,
	}
}

func (f *publishFixture) createCard(t *testing.T, content string) string {
	t.Helper()
	resp, err := f.cards.CreateCard(context.Background(), primary.CreateCardRequest{Content: content})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	return resp.CardID
}

// artifactIDs returns the card IDs serialized under the repo's cards dir.
func (f *publishFixture) artifactIDs(t *testing.T) map[string]bool {
	t.Helper()
	ids := map[string]bool{}
	entries, err := os.ReadDir(filepath.Join(f.repoPath, "cards"))
	if err != nil {
		if os.IsNotExist(err) {
			return ids
		}
		t.Fatalf("failed to read cards dir: %v", err)
	}
	for _, e := range entries {
		ids[strings.TrimSuffix(e.Name(), ".md")] = true
	}
	return ids
}

// ============================================================================
// Tests
// ============================================================================

func TestPublishService_Initialize_Idempotent(t *testing.T) {
	f := newPublishFixture(t)

	result, err := f.service.Initialize(context.Background(), f.repoPath)
	if err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if result.Created {
		t.Error("second Initialize should not report created")
	}
}

func TestPublishService_Status_Uninitialized(t *testing.T) {
	f := newPublishFixture(t)

	_, err := f.service.Status(context.Background(), t.TempDir())
	if !errors.Is(err, primary.ErrRepositoryUninitialized) {
		t.Errorf("expected ErrRepositoryUninitialized, got %v", err)
	}
}

func TestPublishService_Publish_Uninitialized(t *testing.T) {
	f := newPublishFixture(t)

	_, err := f.service.Publish(context.Background(), primary.PublishRequest{Path: t.TempDir()})
	if !errors.Is(err, primary.ErrRepositoryUninitialized) {
		t.Errorf("expected ErrRepositoryUninitialized, got %v", err)
	}
}

func TestPublishService_Publish_OnlyPublishableCards(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	// Mixed board: 2 private, 1 personal, 1 business, 1 ideas.
	f.createCard(t, "My SSN is 123-45-6789")
	f.createCard(t, "password for the safe")
	f.createCard(t, "worried about my sister")
	bizID := f.createCard(t, "client invoice for $1,000")
	ideaID := f.createCard(t, "what about a floating bridge")

	result, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath, Message: "first publish"})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if result.CardsPublished != 2 {
		t.Errorf("expected 2 cards published, got %d", result.CardsPublished)
	}
	if !result.NewCommit || result.CommitSHA == "" {
		t.Errorf("expected a new commit, got %+v", result)
	}

	artifacts := f.artifactIDs(t)
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d: %v", len(artifacts), artifacts)
	}
	if !artifacts[bizID] || !artifacts[ideaID] {
		t.Errorf("expected artifacts for %s and %s, got %v", bizID, ideaID, artifacts)
	}

	// Every serialized artifact must be in the publishable set.
	publishable, err := f.cards.GetPublishable(ctx)
	if err != nil {
		t.Fatalf("GetPublishable failed: %v", err)
	}
	allowed := map[string]bool{}
	for _, c := range publishable {
		allowed[c.ID] = true
	}
	for id := range artifacts {
		if !allowed[id] {
			t.Errorf("artifact %s is not in the publishable set", id)
		}
	}
}

func TestPublishService_Publish_Empty(t *testing.T) {
	f := newPublishFixture(t)

	result, err := f.service.Publish(context.Background(), primary.PublishRequest{Path: f.repoPath})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if result.CardsPublished != 0 {
		t.Errorf("expected 0 cards published, got %d", result.CardsPublished)
	}
	if result.NewCommit {
		t.Error("no-op publish must not create a commit")
	}
	if len(f.artifactIDs(t)) != 0 {
		t.Error("no-op publish must not write artifacts")
	}
}

func TestPublishService_Publish_Idempotent(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	f.createCard(t, "client invoice for $1,000")
	f.createCard(t, "a floating bridge")

	first, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if err != nil {
		t.Fatalf("first Publish failed: %v", err)
	}
	second, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if err != nil {
		t.Fatalf("second Publish failed: %v", err)
	}

	if !first.NewCommit {
		t.Error("first publish should commit")
	}
	if second.NewCommit {
		t.Error("unchanged second publish should not commit")
	}
	if second.CommitSHA != first.CommitSHA {
		t.Errorf("second publish should keep commit %s, got %s", first.CommitSHA, second.CommitSHA)
	}
	if second.CardsPublished != first.CardsPublished {
		t.Errorf("expected equal counts, got %d then %d", first.CardsPublished, second.CardsPublished)
	}
}

func TestPublishService_Publish_RewritesNotDuplicates(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	id := f.createCard(t, "client invoice for $1,000")

	if _, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath}); err != nil {
		t.Fatalf("first Publish failed: %v", err)
	}
	if _, err := f.cards.UpdateContent(ctx, primary.UpdateContentRequest{CardID: id, Content: "client invoice for $2,000"}); err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	result, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if err != nil {
		t.Fatalf("second Publish failed: %v", err)
	}

	if !result.NewCommit {
		t.Error("changed content should produce a new commit")
	}
	if n := len(f.artifactIDs(t)); n != 1 {
		t.Errorf("expected 1 artifact after republish, got %d", n)
	}

	data, err := os.ReadFile(filepath.Join(f.repoPath, "cards", id+".md"))
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if !strings.Contains(string(data), "$2,000") {
		t.Error("artifact should contain the updated content")
	}
}

func TestPublishService_Publish_SerializationFailureRestoresArtifacts(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	firstID := f.createCard(t, "client invoice for $1,000")

	if _, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath}); err != nil {
		t.Fatalf("first Publish failed: %v", err)
	}
	firstArtifact := filepath.Join(f.repoPath, "cards", firstID+".md")
	committed, err := os.ReadFile(firstArtifact)
	if err != nil {
		t.Fatalf("failed to read committed artifact: %v", err)
	}

	// Change the first card and add a second whose artifact path is blocked
	// by a directory, so its write fails mid-run.
	if _, err := f.cards.UpdateContent(ctx, primary.UpdateContentRequest{CardID: firstID, Content: "client invoice for $2,000"}); err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	secondID := f.createCard(t, "client invoice for $3,000")
	if err := os.MkdirAll(filepath.Join(f.repoPath, "cards", secondID+".md"), 0755); err != nil {
		t.Fatalf("failed to block artifact path: %v", err)
	}

	_, err = f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if !errors.Is(err, primary.ErrSerializationFailed) {
		t.Fatalf("expected ErrSerializationFailed, got %v", err)
	}

	// The committed artifact must be restored, not deleted or left rewritten.
	restored, err := os.ReadFile(firstArtifact)
	if err != nil {
		t.Fatalf("committed artifact missing after aborted publish: %v", err)
	}
	if string(restored) != string(committed) {
		t.Errorf("aborted publish left artifact rewritten:\n%s", restored)
	}
	if f.git.commits != 1 {
		t.Errorf("aborted publish must not commit, got %d commits", f.git.commits)
	}
}

func TestPublishService_Publish_InvariantViolationAborts(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	// A read path that leaks a restricted card must be caught by the
	// pre-write invariant check, not trusted.
	leaky := &publishableOverride{
		CardService: f.cards,
		cards: []*primary.Card{
			{ID: "CARD-666", Content: "My SSN is 123-45-6789", Category: primary.CategoryUnassimilated, Sensitivity: "private"},
		},
	}
	service := NewPublishService(leaky, f.cardRepo, f.stateRepo, f.git)

	_, err := service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if !errors.Is(err, primary.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}

	if len(f.artifactIDs(t)) != 0 {
		t.Error("aborted publish must leave no artifacts")
	}
	if f.git.commits != 0 {
		t.Error("aborted publish must not commit")
	}
}

func TestPublishService_Publish_PushFailureKeepsCommit(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	f.createCard(t, "client invoice for $1,000")
	f.git.pushErr = errors.New("remote unreachable")

	result, err := f.service.Publish(ctx, primary.PublishRequest{
		Path: f.repoPath, Push: true, Remote: "origin", Branch: "main",
	})
	if !errors.Is(err, primary.ErrPushFailed) {
		t.Fatalf("expected ErrPushFailed, got %v", err)
	}
	if result == nil {
		t.Fatal("push failure must still return the publish result")
	}
	if result.Pushed {
		t.Error("result must report the push as failed")
	}
	if !result.NewCommit || result.CommitSHA == "" {
		t.Error("local commit must stand after a push failure")
	}
}

func TestPublishService_Publish_PushSuccess(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	f.createCard(t, "client invoice for $1,000")

	result, err := f.service.Publish(ctx, primary.PublishRequest{
		Path: f.repoPath, Push: true, Remote: "origin", Branch: "main",
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !result.Pushed {
		t.Error("expected pushed result")
	}
	if f.git.pushes != 1 {
		t.Errorf("expected 1 push, got %d", f.git.pushes)
	}
}

func TestPublishService_Publish_AlreadyPublishing(t *testing.T) {
	f := newPublishFixture(t)

	if !f.service.acquire(f.repoPath) {
		t.Fatal("failed to acquire publish lock")
	}
	defer f.service.release(f.repoPath)

	_, err := f.service.Publish(context.Background(), primary.PublishRequest{Path: f.repoPath})
	if !errors.Is(err, primary.ErrAlreadyPublishing) {
		t.Errorf("expected ErrAlreadyPublishing, got %v", err)
	}
}

func TestPublishService_StatusAndHistory(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	f.createCard(t, "client invoice for $1,000")
	f.createCard(t, "a floating bridge")
	f.createCard(t, "My SSN is 123-45-6789")

	if _, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath, Message: "weekly"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	status, err := f.service.Status(ctx, f.repoPath)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.PublishableCount != 2 {
		t.Errorf("expected 2 publishable, got %d", status.PublishableCount)
	}
	if status.PublishedCount != 2 {
		t.Errorf("expected 2 published, got %d", status.PublishedCount)
	}
	if status.LastCommitSHA == "" || status.LastPublishedAt == "" {
		t.Error("expected publish provenance in status")
	}

	history, err := f.service.History(ctx, f.repoPath, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].CardsPublished != 2 || history[0].Message != "weekly" {
		t.Errorf("unexpected history entry: %+v", history[0])
	}
}

func TestPublishService_Publish_StampsCardProvenance(t *testing.T) {
	f := newPublishFixture(t)
	ctx := context.Background()

	id := f.createCard(t, "client invoice for $1,000")

	result, err := f.service.Publish(ctx, primary.PublishRequest{Path: f.repoPath})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	card, err := f.cards.GetCard(ctx, id)
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if card.LastCommitSHA != result.CommitSHA {
		t.Errorf("expected card commit sha %s, got %s", result.CommitSHA, card.LastCommitSHA)
	}
	if card.LastPublishedAt == "" {
		t.Error("expected last published timestamp on card")
	}
}
