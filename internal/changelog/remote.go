package changelog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/google/go-github/v57/github"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/oauth2"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 10 * time.Second

// DefaultRevision is the git revision read by GitRefSource when none is set.
const DefaultRevision = "origin/main"

// Source reads the authoritative copy of the changelog from outside the
// working tree.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Fetch returns the full changelog text.
	Fetch(ctx context.Context) (string, error)
}

// GitRefSource reads the changelog as committed at a revision of the local
// repository, typically the remote-tracking main branch.
type GitRefSource struct {
	RepoPath string
	Revision string
	Path     string
}

// NewGitRefSource creates a GitRefSource. An empty revision selects DefaultRevision.
func NewGitRefSource(repoPath, revision, filePath string) *GitRefSource {
	if revision == "" {
		revision = DefaultRevision
	}
	return &GitRefSource{RepoPath: repoPath, Revision: revision, Path: filePath}
}

func (s *GitRefSource) Name() string {
	return "git:" + s.Revision
}

func (s *GitRefSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return git.ReadFileAtRevision(s.RepoPath, s.Revision, s.Path)
}

// GitHubConfig configures reading the changelog through the GitHub API.
type GitHubConfig struct {
	// Repository is "owner/name".
	Repository string `koanf:"repository" yaml:"repository"`
	Token      string `koanf:"token" yaml:"token"`
	// BaseURL selects a GitHub Enterprise server; empty means github.com.
	BaseURL string `koanf:"base_url" yaml:"base_url"`
	// Ref is the branch, tag or SHA to read; empty means the default branch.
	Ref string `koanf:"ref" yaml:"ref"`
}

// GitHubSource reads the changelog through the GitHub contents API.
type GitHubSource struct {
	client *github.Client
	owner  string
	repo   string
	ref    string
	path   string
}

// NewGitHubSource creates a GitHubSource for the changelog at filePath.
func NewGitHubSource(cfg GitHubConfig, filePath string) (*GitHubSource, error) {
	owner, repo, ok := strings.Cut(cfg.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid GitHub repository %q: expected owner/name", cfg.Repository)
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub base URL: %w", err)
		}
	}

	return &GitHubSource{
		client: client,
		owner:  owner,
		repo:   repo,
		ref:    cfg.Ref,
		path:   remotePath(filePath),
	}, nil
}

func (s *GitHubSource) Name() string {
	return "github:" + s.owner + "/" + s.repo
}

func (s *GitHubSource) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRemoteTimeout)
	defer cancel()

	opts := &github.RepositoryContentGetOptions{Ref: s.ref}
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.path, opts)
	if err != nil {
		return "", fmt.Errorf("fetching %s from GitHub: %w", s.path, err)
	}
	if file == nil {
		return "", fmt.Errorf("fetching %s from GitHub: path is a directory", s.path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s from GitHub: %w", s.path, err)
	}
	return content, nil
}

// GitLabConfig configures reading the changelog through the GitLab API.
type GitLabConfig struct {
	// Project is the numeric ID or "group/project" path.
	Project string `koanf:"project" yaml:"project"`
	Token   string `koanf:"token" yaml:"token"`
	// BaseURL is the GitLab server; empty means gitlab.com.
	BaseURL string `koanf:"base_url" yaml:"base_url"`
	// Ref is the branch, tag or SHA to read.
	Ref string `koanf:"ref" yaml:"ref"`
}

// GitLabSource reads the changelog through the GitLab repository files API.
type GitLabSource struct {
	client  *gitlab.Client
	project string
	ref     string
	path    string
}

// NewGitLabSource creates a GitLabSource for the changelog at filePath.
func NewGitLabSource(cfg GitLabConfig, filePath string) (*GitLabSource, error) {
	if cfg.Project == "" {
		return nil, errors.New("GitLab project is required")
	}

	var opts []gitlab.ClientOptionFunc
	if cfg.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	ref := cfg.Ref
	if ref == "" {
		ref = "main"
	}

	return &GitLabSource{
		client:  client,
		project: cfg.Project,
		ref:     ref,
		path:    remotePath(filePath),
	}, nil
}

func (s *GitLabSource) Name() string {
	return "gitlab:" + s.project
}

func (s *GitLabSource) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRemoteTimeout)
	defer cancel()

	opts := &gitlab.GetRawFileOptions{Ref: &s.ref}
	raw, _, err := s.client.RepositoryFiles.GetRawFile(s.project, s.path, opts, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching %s from GitLab: %w", s.path, err)
	}
	return string(raw), nil
}

// remotePath converts a local relative path to the slash-separated form used
// by hosting APIs.
func remotePath(filePath string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(filePath)), "/")
}
