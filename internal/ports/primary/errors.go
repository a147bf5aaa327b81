package primary

import "errors"

// Error taxonomy for the card store and publish gate. Callers match these
// with errors.Is; services and adapters wrap them with context.
var (
	// ErrNotFound means an unknown card identifier. Recoverable - re-fetch.
	ErrNotFound = errors.New("card not found")

	// ErrRepositoryUninitialized means an operation ran against a path that
	// has not been initialized as a publish repository.
	ErrRepositoryUninitialized = errors.New("repository not initialized")

	// ErrAlreadyPublishing means a publish is in flight for the same
	// repository. Recoverable - retry later.
	ErrAlreadyPublishing = errors.New("publish already in progress")

	// ErrSerializationFailed means writing a card artifact failed. The
	// publish aborts with no commit.
	ErrSerializationFailed = errors.New("card serialization failed")

	// ErrInvariantViolation means a card slated for publish is not at a
	// publishable sensitivity level. Structurally unreachable; logged as a
	// defect. The publish aborts with no commit.
	ErrInvariantViolation = errors.New("publish eligibility invariant violated")

	// ErrCommitFailed means the version-control commit failed. No partial
	// state is recorded.
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed means the local commit stands but the remote push did
	// not. Reported alongside a valid publish result.
	ErrPushFailed = errors.New("push failed")
)
