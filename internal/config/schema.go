package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/artifacts"
	"github.com/ariel-frischer/autochangelog/internal/prompt"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeFloat
	TypeDuration
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "agent.type")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value (nil = no default)
	EnvVar        string          // CI variable read as-is, besides AUTOCHANGELOG_<KEY>
	Secret        bool            // Masked when the configuration is printed
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_path": {
		Path:        "changelog_path",
		Type:        TypeString,
		Description: "Changelog file to update",
		Default:     "CHANGELOG.md",
		EnvVar:      "CHANGELOG_PATH",
	},
	"target": {
		Path:        "target",
		Type:        TypeString,
		Description: "Free-text label for what is being released",
		EnvVar:      "TARGET",
	},
	"latest_tag": {
		Path:        "latest_tag",
		Type:        TypeString,
		Description: "Current version, v-prefixed or bare",
		EnvVar:      "LATEST_TAG",
	},
	"commit_count": {
		Path:        "commit_count",
		Type:        TypeInt,
		Description: "Number of recent commits summarized outside pull requests",
		Default:     10,
		EnvVar:      "COMMIT_COUNT",
	},
	"event_name": {
		Path:        "event_name",
		Type:        TypeString,
		Description: "CI event; pull_request selects base..head commits",
		EnvVar:      "GITHUB_EVENT_NAME",
	},
	"base_sha": {
		Path:        "base_sha",
		Type:        TypeString,
		Description: "Pull request base commit",
		EnvVar:      "PR_BASE_SHA",
	},
	"head_sha": {
		Path:        "head_sha",
		Type:        TypeString,
		Description: "Pull request head commit",
		EnvVar:      "PR_HEAD_SHA",
	},
	"version_increment": {
		Path:          "version_increment",
		Type:          TypeEnum,
		AllowedValues: []string{"auto", "major", "minor", "patch"},
		Description:   "Version increment; auto derives it from the commits",
		Default:       "auto",
		EnvVar:        "VERSION_INCREMENT",
	},
	"excerpt_lines": {
		Path:        "excerpt_lines",
		Type:        TypeInt,
		Description: "Changelog history lines sent as context",
		Default:     100,
	},
	"repo_path": {
		Path:        "repo_path",
		Type:        TypeString,
		Description: "Repository to read commits and the remote changelog from",
		Default:     ".",
	},
	"agent.type": {
		Path:          "agent.type",
		Type:          TypeEnum,
		AllowedValues: []string{"claude", "openai", "gemini"},
		Description:   "Text-generation backend",
		Default:       "claude",
	},
	"agent.api_key": {
		Path:        "agent.api_key",
		Type:        TypeString,
		Description: "API key; defaults to the key of the selected backend",
		Secret:      true,
	},
	"agent.model": {
		Path:        "agent.model",
		Type:        TypeString,
		Description: "Model name (empty = backend default)",
	},
	"agent.temperature": {
		Path:        "agent.temperature",
		Type:        TypeFloat,
		Description: "Sampling temperature",
		Default:     0.1,
	},
	"agent.max_tokens": {
		Path:        "agent.max_tokens",
		Type:        TypeInt,
		Description: "Maximum tokens in the generated entry",
		Default:     4000,
	},
	"agent.base_url": {
		Path:        "agent.base_url",
		Type:        TypeString,
		Description: "Custom API endpoint (Azure OpenAI, local models)",
	},
	"agent.proxy_url": {
		Path:        "agent.proxy_url",
		Type:        TypeString,
		Description: "HTTP proxy for generation requests",
	},
	"agent.timeout": {
		Path:        "agent.timeout",
		Type:        TypeDuration,
		Description: "Timeout of the generation request",
		Default:     "120s",
	},
	"api_keys.claude": {
		Path:        "api_keys.claude",
		Type:        TypeString,
		Description: "Anthropic API key",
		EnvVar:      "ANTHROPIC_API_KEY",
		Secret:      true,
	},
	"api_keys.openai": {
		Path:        "api_keys.openai",
		Type:        TypeString,
		Description: "OpenAI API key",
		EnvVar:      "OPENAI_API_KEY",
		Secret:      true,
	},
	"api_keys.gemini": {
		Path:        "api_keys.gemini",
		Type:        TypeString,
		Description: "Gemini API key",
		EnvVar:      "GEMINI_API_KEY",
		Secret:      true,
	},
	"remote.source": {
		Path:          "remote.source",
		Type:          TypeEnum,
		AllowedValues: []string{"git", "github", "gitlab", "none"},
		Description:   "Where the published changelog is read from",
		Default:       "git",
	},
	"remote.revision": {
		Path:        "remote.revision",
		Type:        TypeString,
		Description: "Git revision for the git source",
		Default:     "origin/main",
	},
	"remote.github.repository": {
		Path:        "remote.github.repository",
		Type:        TypeString,
		Description: "GitHub repository as owner/name",
		EnvVar:      "GITHUB_REPOSITORY",
	},
	"remote.github.token": {
		Path:        "remote.github.token",
		Type:        TypeString,
		Description: "GitHub token",
		EnvVar:      "GITHUB_TOKEN",
		Secret:      true,
	},
	"remote.github.base_url": {
		Path:        "remote.github.base_url",
		Type:        TypeString,
		Description: "GitHub Enterprise server URL",
	},
	"remote.github.ref": {
		Path:        "remote.github.ref",
		Type:        TypeString,
		Description: "Branch, tag or SHA (empty = default branch)",
	},
	"remote.gitlab.project": {
		Path:        "remote.gitlab.project",
		Type:        TypeString,
		Description: "GitLab project ID or path",
		EnvVar:      "CI_PROJECT_ID",
	},
	"remote.gitlab.token": {
		Path:        "remote.gitlab.token",
		Type:        TypeString,
		Description: "GitLab token",
		EnvVar:      "GITLAB_TOKEN",
		Secret:      true,
	},
	"remote.gitlab.base_url": {
		Path:        "remote.gitlab.base_url",
		Type:        TypeString,
		Description: "GitLab server URL",
		EnvVar:      "CI_SERVER_URL",
	},
	"remote.gitlab.ref": {
		Path:        "remote.gitlab.ref",
		Type:        TypeString,
		Description: "Branch, tag or SHA",
		EnvVar:      "CI_DEFAULT_BRANCH",
	},
	"files.commits": {
		Path:        "files.commits",
		Type:        TypeString,
		Description: "Commits input, one hash|message|author|date per line",
		Default:     "recent_commits.txt",
	},
	"files.changed_files": {
		Path:        "files.changed_files",
		Type:        TypeString,
		Description: "Changed files input, one path per line",
		Default:     "changed_files.txt",
	},
	"files.status": {
		Path:        "files.status",
		Type:        TypeString,
		Description: "Run status output (NO_UPDATE | UPDATED | ERROR)",
		Default:     artifacts.DefaultPaths().Status,
	},
	"files.new_content": {
		Path:        "files.new_content",
		Type:        TypeString,
		Description: "New entry output",
		Default:     artifacts.DefaultPaths().NewContent,
	},
	"files.version_info": {
		Path:        "files.version_info",
		Type:        TypeString,
		Description: "Version record output (JSON)",
		Default:     artifacts.DefaultPaths().VersionInfo,
	},
	"prompt.max_diff_bytes": {
		Path:        "prompt.max_diff_bytes",
		Type:        TypeInt,
		Description: "Maximum diff size sent for context",
		Default:     prompt.DefaultOptions().MaxDiffBytes,
	},
	"prompt.max_list_bytes": {
		Path:        "prompt.max_list_bytes",
		Type:        TypeInt,
		Description: "Maximum size of the commit and changed-file lists",
		Default:     prompt.DefaultOptions().MaxListBytes,
	},
}

// ErrUnknownKey indicates that a configuration key is not recognized.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %q", e.Key)
}

// GetKeySchema returns the schema for a key path.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns all key schemas ordered by path.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, schema := range KnownKeys {
		keys = append(keys, schema)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Path < keys[j].Path
	})
	return keys
}

// EnvVarName returns the AUTOCHANGELOG_ variable that sets a key path.
func EnvVarName(path string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(path, ".", "__"))
}

// ciEnvKeys maps CI variable names to key paths.
func ciEnvKeys() map[string]string {
	mapping := make(map[string]string)
	for path, schema := range KnownKeys {
		if schema.EnvVar != "" {
			mapping[schema.EnvVar] = path
		}
	}
	return mapping
}
