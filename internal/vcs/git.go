// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vcs stages and commits artifacts with the git CLI.
package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	binGit = "git"

	// lockFile lives in the repository's git directory and serialises
	// commits from concurrent workstation processes sharing one index.
	lockFile = "workstation.lock"

	lockRetryDelay = 50 * time.Millisecond
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Git commits single files in the repository that contains them.
type Git struct {
	exec executor
}

// NewGit returns a Git backed by the system git binary.
func NewGit() *Git {
	return &Git{exec: &osExecutor{}}
}

// Available reports whether the git binary is on PATH.
func (g *Git) Available() bool {
	_, err := g.exec.LookPath(binGit)
	return err == nil
}

// Commit stages path and records a commit containing only that file. Commits
// into the same repository are serialised through an advisory lock file kept
// in its git directory.
func (g *Git) Commit(ctx context.Context, path, message string) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	gitDir, err := g.gitDir(ctx, dir)
	if err != nil {
		return err
	}

	lock := flock.New(filepath.Join(gitDir, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring commit lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquiring commit lock: %s is held", lock.Path())
	}
	defer lock.Unlock()

	if out, err := g.exec.Run(ctx, dir, binGit, "add", "--", name); err != nil {
		return fmt.Errorf("git add %s: %s: %w", name, strings.TrimSpace(string(out)), err)
	}
	if out, err := g.exec.Run(ctx, dir, binGit, "commit", "-m", message, "--", name); err != nil {
		return fmt.Errorf("git commit %s: %s: %w", name, strings.TrimSpace(string(out)), err)
	}
	return nil
}

// gitDir returns the absolute git directory of the repository containing dir.
func (g *Git) gitDir(ctx context.Context, dir string) (string, error) {
	out, err := g.exec.Run(ctx, dir, binGit, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %s: %w", strings.TrimSpace(string(out)), err)
	}
	gitDir := strings.TrimSpace(string(out))
	if gitDir == "" {
		return "", fmt.Errorf("git rev-parse: empty git directory for %s", dir)
	}
	return gitDir, nil
}
