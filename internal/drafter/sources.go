package drafter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/git"
)

// Generator produces raw text for a prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// DiffSource produces the diff summary forwarded as context.
type DiffSource interface {
	Diff(ctx context.Context) (string, error)
}

// ChangelogLoader reads the full changelog document.
type ChangelogLoader interface {
	Load(ctx context.Context) (*changelog.Document, error)
}

// GitDiffSource summarizes commits of a local repository with per-file
// change statistics.
type GitDiffSource struct {
	RepoPath string
	Options  git.LogOptions
}

func (s *GitDiffSource) Diff(ctx context.Context) (string, error) {
	return git.LogWithStats(ctx, s.RepoPath, s.Options)
}

// Inputs is the raw text the run analyzes.
type Inputs struct {
	// Commits has one "hash|message|author|date" record per line.
	Commits string
	// ChangedFiles lists changed paths, one per line.
	ChangedFiles string
}

// ReadCommits reads the commits file.
func ReadCommits(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading commits file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadInputs reads the commits file and the changed-files file. Both must
// exist; an empty changedFilesPath skips the changed-files input.
func ReadInputs(commitsPath, changedFilesPath string) (Inputs, error) {
	text, err := ReadCommits(commitsPath)
	if err != nil {
		return Inputs{}, err
	}
	in := Inputs{Commits: text}

	if changedFilesPath == "" {
		return in, nil
	}
	data, err := os.ReadFile(changedFilesPath)
	if err != nil {
		return Inputs{}, fmt.Errorf("reading changed files: %w", err)
	}
	in.ChangedFiles = strings.TrimSpace(string(data))

	return in, nil
}
