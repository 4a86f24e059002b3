package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleChangelog = `# Changelog

## [1.5.0] - October 2026

### Added
- Login

## [1.4.0] - May 2025

### Fixed
- See [1.3.0] notes

<!-- AI_APPEND_HERE -->
`

func TestDocument_Versions(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []string
	}{
		"document order": {
			text: sampleChangelog,
			want: []string{"1.5.0", "1.4.0"},
		},
		"empty": {
			text: "",
			want: []string{},
		},
		"indented header ignored": {
			text: "  ## [9.9.9] - May 2025\n## [Unreleased]",
			want: []string{"Unreleased"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc := NewDocument("CHANGELOG.md", tt.text, OriginLocal)
			assert.Equal(t, tt.want, doc.Versions())
		})
	}
}

func TestDocument_HasVersion(t *testing.T) {
	t.Parallel()

	doc := NewDocument("CHANGELOG.md", sampleChangelog, OriginLocal)

	tests := map[string]struct {
		version string
		want    bool
	}{
		"bare":         {version: "1.4.0", want: true},
		"v prefixed":   {version: "v1.5.0", want: true},
		"only in text": {version: "1.3.0", want: false},
		"missing":      {version: "2.0.0", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, doc.HasVersion(tt.version))
		})
	}
}
