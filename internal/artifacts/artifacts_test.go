package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriter_WriteStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]Status{
		"no update": StatusNoUpdate,
		"updated":   StatusUpdated,
		"error":     StatusError,
	}

	for name, status := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			w := NewWriter(dir, DefaultPaths())

			require.NoError(t, w.WriteStatus(status))
			assert.Equal(t, string(status), readFile(t, filepath.Join(dir, "changelog_status.txt")))
		})
	}
}

func TestWriter_WriteVersionInfo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, DefaultPaths())
	info := VersionInfo{Version: "1.5.0", Increment: "minor", PreviousVersion: "v1.4.0"}

	require.NoError(t, w.WriteVersionInfo(info))
	assert.JSONEq(t,
		`{"version":"1.5.0","increment":"minor","previousVersion":"v1.4.0"}`,
		readFile(t, filepath.Join(dir, "version_info.txt")))
}

func TestWriter_WriteNewContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, DefaultPaths())

	require.NoError(t, w.WriteNewContent("## [1.5.0] - October 2026\n- Login"))
	assert.Equal(t, "## [1.5.0] - October 2026\n- Login", readFile(t, filepath.Join(dir, "new_content.txt")))
}

func TestWriter_Paths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "status")

	w := NewWriter(dir, Paths{Status: abs, NewContent: ""})
	require.NoError(t, w.WriteStatus(StatusUpdated))
	require.NoError(t, w.WriteNewContent("skipped"))

	assert.Equal(t, "UPDATED", readFile(t, abs))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "empty path disables the artifact")
}
