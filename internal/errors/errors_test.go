package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		wantName string
		wantExit int
	}{
		"argument":      {category: Argument, wantName: "Argument Error", wantExit: ExitInvalid},
		"configuration": {category: Configuration, wantName: "Configuration Error", wantExit: ExitInvalid},
		"input":         {category: Input, wantName: "Input Error", wantExit: ExitFailure},
		"generation":    {category: Generation, wantName: "Generation Error", wantExit: ExitFailure},
		"runtime":       {category: Runtime, wantName: "Runtime Error", wantExit: ExitFailure},
		"unknown":       {category: ErrorCategory(42), wantName: "Error", wantExit: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantName, tt.category.String())
			assert.Equal(t, tt.wantExit, tt.category.ExitCode())
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	base := stderrors.New("boom")

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(base))
	assert.Equal(t, ExitInvalid, ExitCode(InvalidConfig(base)))
	assert.Equal(t, ExitInvalid, ExitCode(fmt.Errorf("loading: %w", InvalidConfig(base))))
	assert.Equal(t, ExitFailure, ExitCode(GenerationFailed(base)))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	base := stderrors.New("boom")

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ctx"))

	wrapped := WrapWithMessage(base, Input, "reading")
	assert.Equal(t, "reading: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.Same(t, wrapped, AsCLIError(fmt.Errorf("outer: %w", wrapped)))
	assert.Nil(t, AsCLIError(base))
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage("unknown increment", "autochangelog bump --increment <major|minor|patch>",
		"Use one of major, minor, patch or auto")

	got := FormatError(err, true)
	assert.Equal(t, "Error [Argument Error]: unknown increment\n"+
		"\nUsage: autochangelog bump --increment <major|minor|patch>\n"+
		"\nTo fix this:\n"+
		"  • Use one of major, minor, patch or auto\n", got)

	assert.Empty(t, FormatError(nil, true))
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, stderrors.New("disk full"), true)
	assert.Equal(t, "Error [Runtime Error]: disk full\n", buf.String())

	buf.Reset()
	FprintError(&buf, nil, true)
	assert.Empty(t, buf.String())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	base := stderrors.New("no such file")

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"invalid config":    {err: InvalidConfig(base), category: Configuration, contains: "no such file"},
		"missing api key":   {err: MissingAPIKey("openai", "OPENAI_API_KEY"), category: Configuration, contains: `"openai"`},
		"unreadable input":  {err: UnreadableInput("recent_commits.txt", base), category: Input, contains: "recent_commits.txt"},
		"not a repository":  {err: NotARepository("/tmp/x"), category: Input, contains: "/tmp/x"},
		"generation failed": {err: GenerationFailed(base), category: Generation, contains: "generating changelog entry"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
