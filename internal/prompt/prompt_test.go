package prompt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ariel-frischer/autochangelog/internal/commits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() Context {
	raw := "a1|feat: add login|alice|2024-01-01\na2|fix: null check|bob|2024-01-02"
	parsed := commits.Parse(raw)
	return Context{
		Target:       "web",
		LatestTag:    "v1.4.0",
		CommitCount:  len(parsed),
		Commits:      raw,
		ChangedFiles: "src/login.go\nsrc/user.go",
		Diff:         "a1 feat: add login\n src/login.go | 10 ++++",
		Changelog:    "# Changelog\n\n<!-- AI_APPEND_HERE -->",
		NewVersion:   "1.5.0",
		Categories:   commits.Categorize(parsed),
		Date:         time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	p, err := Build(sampleContext(), DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, p.System)
	assert.Contains(t, p.System, "Output only the raw Markdown entry")

	wantFragments := []string{
		"- Target: web",
		"- Latest tag: v1.4.0",
		"- Suggested version: 1.5.0",
		"- Commits analyzed: 2",
		"- Commit categories detected: feat: 1 commits, fix: 1 commits",
		"a1|feat: add login|alice|2024-01-01",
		"src/login.go\nsrc/user.go",
		`MUST start with the line "## [1.5.0] - October 2026"`,
		"Added, Changed, Fixed, Removed, Security, Technical Details",
		`output exactly "NO_UPDATE_NEEDED"`,
		"<!-- AI_APPEND_HERE -->",
	}
	for _, fragment := range wantFragments {
		assert.Contains(t, p.User, fragment)
	}
}

func TestBuild_EmptyInputsUsePlaceholder(t *testing.T) {
	t.Parallel()

	c := sampleContext()
	c.Diff = ""
	c.ChangedFiles = "  \n"
	c.Changelog = ""
	c.Categories = nil

	p, err := Build(c, Options{})
	require.NoError(t, err)

	assert.Contains(t, p.User, "DIFF:\n(none)")
	assert.Contains(t, p.User, "CHANGED FILES:\n(none)")
	assert.Contains(t, p.User, "- Commit categories detected: (none)")
}

func TestBuild_TruncatesDiff(t *testing.T) {
	t.Parallel()

	c := sampleContext()
	c.Diff = strings.Repeat("line of diff\n", 100)

	p, err := Build(c, Options{MaxDiffBytes: 50, MaxListBytes: 1000})
	require.NoError(t, err)

	assert.Contains(t, p.User, truncatedDiffNotice)
	assert.NotContains(t, p.User, strings.Repeat("line of diff\n", 5))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text  string
		limit int
		want  string
	}{
		"within limit": {
			text:  "abc\ndef",
			limit: 10,
			want:  "abc\ndef",
		},
		"cuts at line boundary": {
			text:  "abc\ndef\nghi",
			limit: 9,
			want:  "abc\ndef\n[cut]",
		},
		"single long line cut at limit": {
			text:  "abcdefghij",
			limit: 4,
			want:  "abcd\n[cut]",
		},
		"multi-byte rune kept whole": {
			text:  "aébc",
			limit: 2,
			want:  "a\n[cut]",
		},
		"zero limit disables": {
			text:  "abcdefghij",
			limit: 0,
			want:  "abcdefghij",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Truncate(tt.text, tt.limit, "[cut]")
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
