// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifacts writes workflow outputs to a flat output directory and
// optionally commits each one to version control.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrWrite marks a failure to persist an artifact.
var ErrWrite = errors.New("artifact write failed")

// ErrInvalidName is returned for a filename that is not a single path element.
var ErrInvalidName = errors.New("artifact name must be a single path element")

// WriteError reports the artifact path that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing artifact %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// Committer records a written artifact in version control.
type Committer interface {
	Commit(ctx context.Context, path, message string) error
}

// Store saves artifacts under one directory.
type Store struct {
	dir       string
	committer Committer
	logger    *slog.Logger
}

// New returns a Store writing into dir. A nil committer disables the commit
// step.
func New(dir string, committer Committer, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, committer: committer, logger: logger}
}

// Dir returns the output directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path filename is written to.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Save writes content to dir/filename, creating the directory if needed and
// replacing any existing file. When a committer is set the file is then
// committed; a commit failure is logged and otherwise ignored, and the
// written file is left in place.
func (s *Store) Save(ctx context.Context, filename, content string) error {
	path := s.Path(filename)
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return &WriteError{Path: path, Err: ErrInvalidName}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	s.logger.Debug("artifact saved", "path", path, "bytes", len(content))

	if s.committer == nil {
		return nil
	}
	if err := s.committer.Commit(ctx, path, "workstation: add "+filename); err != nil {
		s.logger.Warn("artifact commit failed", "path", path, "error", err)
	}
	return nil
}

// RequirementsFile returns the requirements artifact name for project.
func RequirementsFile(project string) string { return project + "_requirements.md" }

// SpecFile returns the spec artifact name for project.
func SpecFile(project string) string { return project + "_spec.md" }

// MediaFile returns the media artifact name for project.
func MediaFile(project string) string { return project + "_media.txt" }
