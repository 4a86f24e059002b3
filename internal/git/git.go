// Package git reads repository state for autochangelog with go-git: the
// changelog as of a remote revision, commit logs with file stats for the
// generation context, and commit listings for the collect command.
// No git CLI is required.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/maxbolgarin/logze/v2"
)

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	log := logze.With("component", "git")
	log.Debug("opening repository", "path", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// RepositoryRoot returns the absolute path to the root of the repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}
	return worktreeRoot(repo)
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

func worktreeRoot(repo *git.Repository) (string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// resolve turns a revision such as "origin/main", "HEAD~2" or a SHA into a commit hash.
func resolve(repo *git.Repository, revision string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", revision, err)
	}
	return *hash, nil
}

// repoRelative converts path into a slash-separated path relative to the
// repository root, as go-git trees expect.
func repoRelative(repo *git.Repository, path string) (string, error) {
	if filepath.IsAbs(path) {
		root, err := worktreeRoot(repo)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("making %s relative to %s: %w", path, root, err)
		}
		path = rel
	}

	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path %q is outside the repository", path)
	}
	return clean, nil
}
