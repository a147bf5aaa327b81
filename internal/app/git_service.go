package app

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitService provides git operations for publish repositories.
type GitService struct{}

// NewGitService creates a new GitService.
func NewGitService() *GitService {
	return &GitService{}
}

// IsRepository reports whether path is the root of a git repository.
func (s *GitService) IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// Init creates a new git repository at path.
func (s *GitService) Init(path string) error {
	if err := s.runGitCommand(path, "init"); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	return nil
}

// Head returns the current HEAD commit hash. A repository with no commits
// yet returns an empty string, not an error.
func (s *GitService) Head(path string) (string, error) {
	output, err := s.runGitCommandOutput(path, "rev-parse", "--verify", "HEAD")
	if err != nil {
		// No commits yet - rev-parse fails on an unborn branch.
		return "", nil
	}
	return strings.TrimSpace(output), nil
}

// IsDirty checks if the working directory has uncommitted changes.
func (s *GitService) IsDirty(path string) (bool, error) {
	output, err := s.runGitCommandOutput(path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// Add stages the given pathspec.
func (s *GitService) Add(path, spec string) error {
	return s.runGitCommand(path, "add", spec)
}

// Commit records staged changes with the given message.
func (s *GitService) Commit(path, message string) error {
	return s.runGitCommand(path, "commit", "-m", message)
}

// Push pushes the given branch to the remote.
func (s *GitService) Push(path, remote, branch string) error {
	return s.runGitCommand(path, "push", remote, branch)
}

// runGitCommand executes a git command and returns an error if it fails.
func (s *GitService) runGitCommand(repoPath string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, stderr.String())
	}
	return nil
}

// runGitCommandOutput executes a git command and returns the stdout.
func (s *GitService) runGitCommandOutput(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
