package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/config"
	"github.com/ariel-frischer/autochangelog/internal/drafter"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/generation"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/progress"
)

// newArtifactWriter returns the writer for the configured output files,
// relative to the working directory.
func newArtifactWriter(cfg *config.Configuration) *artifacts.Writer {
	return artifacts.NewWriter("", cfg.ArtifactPaths())
}

// newLoader builds the changelog loader with the configured remote source.
func newLoader(cfg *config.Configuration) (*changelog.Loader, error) {
	remote, err := cfg.RemoteSource()
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}
	return changelog.NewLoader(cfg.ChangelogPath, remote), nil
}

// newDiffSource returns the git diff source, or nil outside a repository.
func newDiffSource(cfg *config.Configuration) drafter.DiffSource {
	if !git.IsRepository(cfg.RepoPath) {
		return nil
	}
	return &drafter.GitDiffSource{RepoPath: cfg.RepoPath, Options: cfg.LogOptions()}
}

// drafterOptions maps the configuration onto run options.
func drafterOptions(cfg *config.Configuration) drafter.Options {
	return drafter.Options{
		Target:       cfg.Target,
		LatestTag:    cfg.LatestTag,
		Increment:    cfg.Increment(),
		ExcerptLines: cfg.ExcerptLines,
		Prompt:       cfg.PromptOptions(),
	}
}

// readInputs reads the commits and changed-files inputs.
func readInputs(cfg *config.Configuration) (drafter.Inputs, error) {
	in, err := drafter.ReadInputs(cfg.Files.Commits, cfg.Files.ChangedFiles)
	if err != nil {
		return in, inputError(err)
	}
	return in, nil
}

// readCommits reads only the commits input.
func readCommits(cfg *config.Configuration) (string, error) {
	text, err := drafter.ReadCommits(cfg.Files.Commits)
	if err != nil {
		return "", inputError(err)
	}
	return text, nil
}

func inputError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return clierrors.UnreadableInput(pathErr.Path, err)
	}
	return clierrors.Wrap(err, clierrors.Input)
}

// newGenerator creates the generation client for the configured agent.
func newGenerator(ctx context.Context, cfg *config.Configuration) (*generation.Generator, error) {
	if cfg.Agent.APIKey == "" {
		schema, _ := config.GetKeySchema("api_keys." + string(cfg.Agent.Type))
		return nil, clierrors.MissingAPIKey(string(cfg.Agent.Type), schema.EnvVar)
	}
	gen, err := generation.New(ctx, cfg.Agent)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration)
	}
	return gen, nil
}

// trackedGenerator shows progress while the request is in flight and marks
// its failures as generation errors. The client is created on the first
// request, so runs that end before generation need no API key.
type trackedGenerator struct {
	cfg       *config.Configuration
	gen       drafter.Generator
	indicator *progress.Indicator
}

func (g *trackedGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	if g.gen == nil {
		gen, err := newGenerator(ctx, g.cfg)
		if err != nil {
			return "", err
		}
		g.gen = gen
	}

	var out string
	err := g.indicator.Track("Generating changelog entry", func() error {
		var err error
		out, err = g.gen.Generate(ctx, system, user)
		return err
	})
	if err != nil {
		return "", clierrors.GenerationFailed(err)
	}
	return out, nil
}
