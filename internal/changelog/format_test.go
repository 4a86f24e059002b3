package changelog

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEntry = `## [1.5.0] - October 2026

### Added
- Login with single sign-on for enterprise accounts

### Technical Details
- Bumped go-git`

func TestFormatEntry_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatEntry("\n"+sampleEntry+"\n", &buf, FormatOptions{Plain: true}))
	assert.Equal(t, sampleEntry+"\n", buf.String())
}

func TestFormatEntry_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatEntry("  ", &buf, FormatOptions{}))
	assert.Empty(t, buf.String())
}

func TestFormatEntry_Styled(t *testing.T) {
	// color.NoColor is global
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	var buf bytes.Buffer
	require.NoError(t, FormatEntry(sampleEntry, &buf, FormatOptions{MaxWidth: 30}))

	want := "## [1.5.0] - October 2026\n" +
		"\n" +
		"✓ Added\n" +
		"  - Login with single sign-on\n" +
		"    for enterprise accounts\n" +
		"\n" +
		"⚙ Technical Details\n" +
		"  - Bumped go-git\n"
	assert.Equal(t, want, buf.String())
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text unchanged": {text: "short", maxWidth: 10, want: "short"},
		"zero width unchanged": {text: "a b c", maxWidth: 0, want: "a b c"},
		"breaks at space":      {text: "aaa bbb ccc", maxWidth: 7, want: "aaa\n  bbb ccc"},
		"hard break":           {text: "abcdefghij", maxWidth: 4, want: "abcd\n  efgh\n  ij"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "  "))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entry string
		want  string
	}{
		"entry":     {entry: sampleEntry, want: "[1.5.0] - October 2026 (2 changes)"},
		"no header": {entry: "- one\n- two", want: "untitled entry (2 changes)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Summarize(tt.entry))
		})
	}
}
