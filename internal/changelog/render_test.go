package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryHeader(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version string
		date    time.Time
		want    string
	}{
		"bare version": {
			version: "1.5.0",
			date:    time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
			want:    "## [1.5.0] - October 2026",
		},
		"v prefix stripped": {
			version: "v0.1.0",
			date:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:    "## [0.1.0] - January 2025",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EntryHeader(tt.version, tt.date))
		})
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs", "CHANGELOG.md")
	doc := NewDocument(path, "# Changelog\n\n"+Marker, OriginNew)

	require.NoError(t, Save(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Text, string(data))
}
