package git

import (
	"fmt"

	"github.com/maxbolgarin/logze/v2"
)

// ReadFileAtRevision returns the content of path as committed at revision.
// This is the go-git equivalent of `git show <revision>:<path>`; path may be
// absolute or relative to the repository root.
func ReadFileAtRevision(repoPath, revision, path string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	hash, err := resolve(repo, revision)
	if err != nil {
		return "", err
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return "", fmt.Errorf("loading commit %s: %w", hash, err)
	}

	rel, err := repoRelative(repo, path)
	if err != nil {
		return "", err
	}

	file, err := commit.File(rel)
	if err != nil {
		return "", fmt.Errorf("reading %s at %s: %w", rel, revision, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("reading contents of %s: %w", rel, err)
	}

	logze.With("component", "git").Debug("read file at revision", "path", rel, "revision", revision, "bytes", len(content))
	return content, nil
}
