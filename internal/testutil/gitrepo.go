// Package testutil provides test helpers shared across autochangelog packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// BaseTime is the author time of the first fixture commit. Each further
// commit is one hour later.
var BaseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a throwaway repository with helpers to commit files.
type GitRepo struct {
	Dir  string
	Repo *git.Repository

	t testing.TB
	n int
}

// NewGitRepo initializes a repository in a fresh temporary directory.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()
	return InitGitRepo(t, t.TempDir())
}

// InitGitRepo initializes a repository in dir.
func InitGitRepo(t testing.TB, dir string) *GitRepo {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{Dir: dir, Repo: repo, t: t}
}

// Commit writes files (path relative to the repository root), stages them
// and commits with message as Alice.
func (r *GitRepo) Commit(message string, files map[string]string) plumbing.Hash {
	r.t.Helper()
	worktree, err := r.Repo.Worktree()
	require.NoError(r.t, err)

	for name, content := range files {
		r.WriteFile(name, content)
		_, err := worktree.Add(name)
		require.NoError(r.t, err)
	}

	r.n++
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Alice",
			Email: "alice@example.com",
			When:  BaseTime.Add(time.Duration(r.n-1) * time.Hour),
		},
	})
	require.NoError(r.t, err)
	return hash
}

// WriteFile writes a file in the worktree without staging it.
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// SetRemoteRef points refs/remotes/<remote>/<branch> at hash, as a fetch would.
func (r *GitRepo) SetRemoteRef(remote, branch string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}
