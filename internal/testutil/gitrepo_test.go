package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitRepo_Commit(t *testing.T) {
	t.Parallel()

	r := NewGitRepo(t)
	first := r.Commit("chore: scaffold", map[string]string{"pkg/main.go": "package main\n"})
	second := r.Commit("feat: add login", map[string]string{"login.go": "package main\n"})

	head, err := r.Repo.Head()
	require.NoError(t, err)
	assert.Equal(t, second, head.Hash())

	c, err := r.Repo.CommitObject(first)
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Author.Name)
	assert.True(t, c.Author.When.Equal(BaseTime))

	data, err := os.ReadFile(filepath.Join(r.Dir, "pkg", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestGitRepo_SetRemoteRef(t *testing.T) {
	t.Parallel()

	r := NewGitRepo(t)
	hash := r.Commit("docs: changelog", map[string]string{"CHANGELOG.md": "# Changelog\n"})
	r.SetRemoteRef("origin", "main", hash)

	ref, err := r.Repo.Reference(plumbing.NewRemoteReferenceName("origin", "main"), true)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash())
}
