package config

// GetDefaultConfigTemplate returns a fully commented project config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# autochangelog configuration
# Every key can also be set as AUTOCHANGELOG_<KEY> (nested keys joined with __),
# e.g. AUTOCHANGELOG_AGENT__TYPE=openai. See 'autochangelog config keys'.

changelog_path: CHANGELOG.md          # Changelog file to update (CHANGELOG_PATH)
target: ""                            # Label for what is being released (TARGET)
commit_count: 10                      # Recent commits summarized outside pull requests (COMMIT_COUNT)
version_increment: auto               # auto | major | minor | patch (VERSION_INCREMENT)
excerpt_lines: 100                    # Changelog history lines sent as context
repo_path: .                          # Repository to read commits from

# Text generation
agent:
  type: claude                        # claude | openai | gemini
  model: ""                           # Empty = backend default
  temperature: 0.1
  max_tokens: 4000
  base_url: ""                        # Custom endpoint (Azure OpenAI, local models)
  proxy_url: ""
  timeout: 120s

# Where the published changelog is read from before splicing
remote:
  source: git                         # git | github | gitlab | none
  revision: origin/main               # Revision for the git source
  github:
    repository: ""                    # owner/name (GITHUB_REPOSITORY)
    base_url: ""                      # GitHub Enterprise server
    ref: ""                           # Empty = default branch
  gitlab:
    project: ""                       # Project ID or path (CI_PROJECT_ID)
    base_url: ""                      # Server URL (CI_SERVER_URL)
    ref: ""                           # Empty = main (CI_DEFAULT_BRANCH)

# Input and output files
files:
  commits: recent_commits.txt
  changed_files: changed_files.txt
  status: changelog_status.txt
  new_content: new_content.txt
  version_info: version_info.txt

# Prompt size bounds
prompt:
  max_diff_bytes: 60000
  max_list_bytes: 20000
`
}

// GetDefaults returns the default configuration values keyed by dotted path.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{})
	for path, schema := range KnownKeys {
		if schema.Default != nil {
			defaults[path] = schema.Default
		}
	}
	return defaults
}
