package errors

import "fmt"

// Common error messages for the autochangelog CLI.

// InvalidConfig wraps a configuration load or validation failure.
func InvalidConfig(err error) *CLIError {
	return Wrap(err, Configuration,
		"Run 'autochangelog config keys' to list valid keys and values",
		"Run 'autochangelog config show' to inspect the effective configuration",
	)
}

// MissingAPIKey creates an error for an agent without credentials.
func MissingAPIKey(agentType, envVar string) *CLIError {
	return New(Configuration,
		fmt.Sprintf("no API key configured for agent %q", agentType),
		fmt.Sprintf("Set %s in the CI environment", envVar),
		"Or set agent.api_key in .autochangelog.yml",
	)
}

// UnreadableInput creates an error for a commits or changed-files input that
// cannot be read.
func UnreadableInput(path string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("reading input file %s", path),
		"Run 'autochangelog collect' to create the inputs from the local repository",
		"Or set files.commits and files.changed_files to the files written by your CI job",
	)
}

// NotARepository creates an error for a repo_path outside any git repository.
func NotARepository(path string) *CLIError {
	return New(Input,
		fmt.Sprintf("%s is not inside a git repository", path),
		"Run the command from a checkout, or set repo_path",
		"In CI, fetch enough history for the configured commit range",
	)
}

// GenerationFailed wraps a failure of the text-generation call.
func GenerationFailed(err error) *CLIError {
	return WrapWithMessage(err, Generation,
		"generating changelog entry",
		"Check the API key and model for the configured agent",
		"Increase agent.timeout if the request timed out",
	)
}
