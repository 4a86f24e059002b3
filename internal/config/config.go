// autochangelog - AI-drafted changelog entries and semantic version bumps for CI
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/autochangelog

// Package config provides hierarchical configuration management for autochangelog using koanf.
// Configuration is loaded with priority: AUTOCHANGELOG_ environment variables > CI variables
// (CHANGELOG_PATH, LATEST_TAG, ...) > project config (.autochangelog.yml) > user config
// (~/.config/autochangelog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/bump"
	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/generation"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/prompt"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables that can set any key.
const EnvPrefix = "AUTOCHANGELOG_"

// pullRequestEvent is the CI event name that selects base..head commits.
const pullRequestEvent = "pull_request"

// Remote source names.
const (
	RemoteGit    = "git"
	RemoteGitHub = "github"
	RemoteGitLab = "gitlab"
	RemoteNone   = "none"
)

// Configuration represents the autochangelog configuration
type Configuration struct {
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" validate:"required"`
	Target        string `koanf:"target" yaml:"target"`
	LatestTag     string `koanf:"latest_tag" yaml:"latest_tag"`
	CommitCount   int    `koanf:"commit_count" yaml:"commit_count" validate:"min=1,max=10000"`
	// EventName is the CI event; "pull_request" with both SHAs set selects
	// the base..head range instead of the last CommitCount commits.
	EventName string `koanf:"event_name" yaml:"event_name"`
	BaseSHA   string `koanf:"base_sha" yaml:"base_sha"`
	HeadSHA   string `koanf:"head_sha" yaml:"head_sha"`
	// VersionIncrement is "auto" or a manual major/minor/patch override.
	VersionIncrement string `koanf:"version_increment" yaml:"version_increment"`
	ExcerptLines     int    `koanf:"excerpt_lines" yaml:"excerpt_lines" validate:"min=1"`
	RepoPath         string `koanf:"repo_path" yaml:"repo_path" validate:"required"`

	Agent   generation.Config `koanf:"agent" yaml:"agent"`
	APIKeys APIKeys           `koanf:"api_keys" yaml:"api_keys"`
	Remote  RemoteConfig      `koanf:"remote" yaml:"remote"`
	Files   FilesConfig       `koanf:"files" yaml:"files"`
	Prompt  PromptConfig      `koanf:"prompt" yaml:"prompt"`
}

// APIKeys holds one API key per generation backend.
type APIKeys struct {
	Claude string `koanf:"claude" yaml:"claude"`
	OpenAI string `koanf:"openai" yaml:"openai"`
	Gemini string `koanf:"gemini" yaml:"gemini"`
}

// For returns the key of the given backend.
func (k APIKeys) For(t generation.AgentType) string {
	switch t {
	case generation.Claude:
		return k.Claude
	case generation.OpenAI:
		return k.OpenAI
	case generation.Gemini:
		return k.Gemini
	}
	return ""
}

// RemoteConfig selects where the published changelog is read from.
type RemoteConfig struct {
	Source   string                 `koanf:"source" yaml:"source" validate:"oneof=git github gitlab none"`
	Revision string                 `koanf:"revision" yaml:"revision"`
	GitHub   changelog.GitHubConfig `koanf:"github" yaml:"github"`
	GitLab   changelog.GitLabConfig `koanf:"gitlab" yaml:"gitlab"`
}

// FilesConfig holds the input and output file locations.
type FilesConfig struct {
	Commits      string `koanf:"commits" yaml:"commits" validate:"required"`
	ChangedFiles string `koanf:"changed_files" yaml:"changed_files"`
	Status       string `koanf:"status" yaml:"status"`
	NewContent   string `koanf:"new_content" yaml:"new_content"`
	VersionInfo  string `koanf:"version_info" yaml:"version_info"`
}

// PromptConfig bounds the generation context.
type PromptConfig struct {
	MaxDiffBytes int `koanf:"max_diff_bytes" yaml:"max_diff_bytes" validate:"min=1"`
	MaxListBytes int `koanf:"max_list_bytes" yaml:"max_list_bytes" validate:"min=1"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .autochangelog.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if fileExists(projectPath) {
		if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
			return nil, fmt.Errorf("loading project YAML config: %w", err)
		}
	} else if opts.ProjectConfigPath != "" {
		return nil, &ValidationError{FilePath: projectPath, Message: "config file not found"}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) error {
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

// loadUserConfig loads the user-level config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads CI variables, then AUTOCHANGELOG_ overrides.
// Empty variables are ignored so that unset workflow inputs keep defaults.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	ciKeys := ciEnvKeys()
	ciProvider := env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		key, ok := ciKeys[name]
		if !ok || value == "" {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(ciProvider, nil); err != nil {
		return fmt.Errorf("failed to load CI environment config: %w", err)
	}

	prefixed := env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envTransform(name), value
	})
	if err := k.Load(prefixed, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: AUTOCHANGELOG_AGENT__TYPE -> agent.type
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// finalizeConfig unmarshals, normalizes and validates the configuration
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.VersionIncrement = strings.ToLower(strings.TrimSpace(cfg.VersionIncrement))
	cfg.Agent.Type = generation.AgentType(strings.ToLower(string(cfg.Agent.Type)))
	cfg.Remote.Source = strings.ToLower(cfg.Remote.Source)

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Agent.APIKey == "" {
		cfg.Agent.APIKey = cfg.APIKeys.For(cfg.Agent.Type)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

const secretMask = "********"

// Redacted returns a copy with every secret value masked, for display.
func (c *Configuration) Redacted() *Configuration {
	out := *c
	mask := func(s *string) {
		if *s != "" {
			*s = secretMask
		}
	}
	mask(&out.Agent.APIKey)
	mask(&out.APIKeys.Claude)
	mask(&out.APIKeys.OpenAI)
	mask(&out.APIKeys.Gemini)
	mask(&out.Remote.GitHub.Token)
	mask(&out.Remote.GitLab.Token)
	return &out
}

// IsPullRequest reports whether commits are selected as base..head.
func (c *Configuration) IsPullRequest() bool {
	return c.EventName == pullRequestEvent && c.BaseSHA != "" && c.HeadSHA != ""
}

// LogOptions returns the commit selection for the current event.
func (c *Configuration) LogOptions() git.LogOptions {
	if c.IsPullRequest() {
		return git.LogOptions{Base: c.BaseSHA, Head: c.HeadSHA}
	}
	return git.LogOptions{Count: c.CommitCount}
}

// Increment returns the validated version increment override.
func (c *Configuration) Increment() bump.Increment {
	inc, err := bump.ParseIncrement(c.VersionIncrement)
	if err != nil {
		return bump.Auto
	}
	return inc
}

// ArtifactPaths returns the output file locations.
func (c *Configuration) ArtifactPaths() artifacts.Paths {
	return artifacts.Paths{
		Status:      c.Files.Status,
		NewContent:  c.Files.NewContent,
		VersionInfo: c.Files.VersionInfo,
	}
}

// PromptOptions returns the prompt size bounds.
func (c *Configuration) PromptOptions() prompt.Options {
	return prompt.Options{
		MaxDiffBytes: c.Prompt.MaxDiffBytes,
		MaxListBytes: c.Prompt.MaxListBytes,
	}
}

// RemoteSource builds the configured remote changelog source, or nil for "none".
func (c *Configuration) RemoteSource() (changelog.Source, error) {
	switch c.Remote.Source {
	case RemoteGit:
		return changelog.NewGitRefSource(c.RepoPath, c.Remote.Revision, c.ChangelogPath), nil
	case RemoteGitHub:
		return changelog.NewGitHubSource(c.Remote.GitHub, c.ChangelogPath)
	case RemoteGitLab:
		return changelog.NewGitLabSource(c.Remote.GitLab, c.ChangelogPath)
	case RemoteNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown remote source %q", c.Remote.Source)
}
