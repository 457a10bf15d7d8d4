// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifacts

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommitter struct {
	err      error
	paths    []string
	messages []string
}

func (f *fakeCommitter) Commit(_ context.Context, path, message string) error {
	f.paths = append(f.paths, path)
	f.messages = append(f.messages, message)
	return f.err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	s := New(dir, nil, nil)

	require.NoError(t, s.Save(context.Background(), "p_spec.md", "# Spec"))
	assert.Equal(t, "# Spec", readFile(t, filepath.Join(dir, "p_spec.md")))
	assert.Equal(t, filepath.Join(dir, "p_spec.md"), s.Path("p_spec.md"))
	assert.Equal(t, dir, s.Dir())
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir(), nil, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "p_media.txt", "first, longer content"))
	require.NoError(t, s.Save(ctx, "p_media.txt", "second"))
	assert.Equal(t, "second", readFile(t, s.Path("p_media.txt")))
}

func TestSaveCommits(t *testing.T) {
	c := &fakeCommitter{}
	s := New(t.TempDir(), c, nil)

	require.NoError(t, s.Save(context.Background(), "p_requirements.md", "reqs"))
	assert.Equal(t, []string{s.Path("p_requirements.md")}, c.paths)
	assert.Equal(t, []string{"workstation: add p_requirements.md"}, c.messages)
}

func TestSaveSwallowsCommitFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	c := &fakeCommitter{err: errors.New("not a git repository")}
	s := New(t.TempDir(), c, logger)

	err := s.Save(context.Background(), "p_spec.md", "kept")
	require.NoError(t, err)
	assert.Equal(t, "kept", readFile(t, s.Path("p_spec.md")))
	assert.Contains(t, logs.String(), "artifact commit failed")
	assert.Contains(t, logs.String(), "not a git repository")
}

func TestSaveWriteFailure(t *testing.T) {
	base := t.TempDir()
	// A regular file where the output directory should be.
	blocker := filepath.Join(base, "artifacts")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	c := &fakeCommitter{}
	s := New(blocker, c, nil)
	err := s.Save(context.Background(), "p_spec.md", "content")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, filepath.Join(blocker, "p_spec.md"), we.Path)
	assert.Empty(t, c.paths, "commit must not run after a failed write")
}

func TestSaveRejectsNonFlatNames(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "artifacts")
	c := &fakeCommitter{}
	s := New(dir, c, nil)

	for _, name := range []string{"", ".", "..", "../x_spec.md", "a/b_spec.md", `a\b_spec.md`} {
		err := s.Save(context.Background(), name, "content")
		require.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, err, ErrWrite, name)
	}
	assert.NoDirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(base, "x_spec.md"))
	assert.Empty(t, c.paths)
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "darzabi_requirements.md", RequirementsFile("darzabi"))
	assert.Equal(t, "darzabi_spec.md", SpecFile("darzabi"))
	assert.Equal(t, "darzabi_media.txt", MediaFile("darzabi"))
}
