package git

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/autochangelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileAtRevision(t *testing.T) {
	r := testutil.NewGitRepo(t)
	first := r.Commit("docs: initial changelog", map[string]string{"CHANGELOG.md": "# Changelog\n\nremote version\n"})
	r.SetRemoteRef("origin", "main", first)
	r.Commit("docs: local edit", map[string]string{"CHANGELOG.md": "# Changelog\n\nlocal version\n"})

	tests := map[string]struct {
		revision string
		path     string
		expected string
		wantErr  bool
	}{
		"remote ref": {
			revision: "origin/main",
			path:     "CHANGELOG.md",
			expected: "# Changelog\n\nremote version\n",
		},
		"head": {
			revision: "HEAD",
			path:     "./CHANGELOG.md",
			expected: "# Changelog\n\nlocal version\n",
		},
		"absolute path": {
			revision: "origin/main",
			path:     filepath.Join(r.Dir, "CHANGELOG.md"),
			expected: "# Changelog\n\nremote version\n",
		},
		"unknown revision": {
			revision: "upstream/main",
			path:     "CHANGELOG.md",
			wantErr:  true,
		},
		"missing file": {
			revision: "origin/main",
			path:     "docs/CHANGELOG.md",
			wantErr:  true,
		},
		"outside repository": {
			revision: "HEAD",
			path:     "../CHANGELOG.md",
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ReadFileAtRevision(r.Dir, tt.revision, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadFileAtRevision_NotARepository(t *testing.T) {
	_, err := ReadFileAtRevision(t.TempDir(), "HEAD", "CHANGELOG.md")
	require.Error(t, err)
	assert.False(t, IsRepository(t.TempDir()))
}

func TestLogWithStats_LastN(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.Commit("chore: scaffold", map[string]string{"main.go": "package main\n"})
	r.Commit("feat: add login", map[string]string{"login.go": "package main\n\nfunc login() {}\n"})
	r.Commit("fix: null check", map[string]string{"login.go": "package main\n\nfunc login() { _ = 1 }\n"})

	out, err := LogWithStats(context.Background(), r.Dir, LogOptions{Count: 2})
	require.NoError(t, err)

	assert.Contains(t, out, "fix: null check")
	assert.Contains(t, out, "feat: add login")
	assert.NotContains(t, out, "chore: scaffold")
	assert.Contains(t, out, "login.go")
	assert.Less(t, strings.Index(out, "fix: null check"), strings.Index(out, "feat: add login"), "newest commit first")
}

func TestLogWithStats_Range(t *testing.T) {
	r := testutil.NewGitRepo(t)
	base := r.Commit("chore: scaffold", map[string]string{"main.go": "package main\n"})
	r.Commit("feat: add login", map[string]string{"login.go": "package main\n"})
	head := r.Commit("fix: null check", map[string]string{"main.go": "package main\n\n// fixed\n"})

	out, err := LogWithStats(context.Background(), r.Dir, LogOptions{Base: base.String(), Head: head.String(), Count: 1})
	require.NoError(t, err)

	assert.Contains(t, out, "feat: add login")
	assert.Contains(t, out, "fix: null check")
	assert.NotContains(t, out, "chore: scaffold")
}

func TestLogWithStats_BadRevision(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.Commit("chore: scaffold", map[string]string{"main.go": "package main\n"})

	_, err := LogWithStats(context.Background(), r.Dir, LogOptions{Base: "deadbeef", Head: "HEAD"})
	require.Error(t, err)
}

func TestCommits(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.Commit("feat: add login\n\nLonger body.", map[string]string{"login.go": "package main\n", "README.md": "# x\n"})
	r.Commit("fix: null check", map[string]string{"login.go": "package main\n\n// fix\n"})

	infos, err := Commits(context.Background(), r.Dir, LogOptions{Count: 10})
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "fix: null check", infos[0].Subject)
	assert.Equal(t, "feat: add login", infos[1].Subject)
	assert.Equal(t, "Alice", infos[1].Author)
	assert.ElementsMatch(t, []string{"login.go", "README.md"}, infos[1].Files)

	listing := infos[0].Listing()
	parts := strings.Split(listing, "|")
	require.Len(t, parts, 4)
	assert.Len(t, parts[0], 7)
	assert.Equal(t, "fix: null check", parts[1])
	assert.Equal(t, "Alice", parts[2])
	assert.Equal(t, "2024-01-01", parts[3])

	assert.Equal(t, []string{"README.md", "login.go"}, ChangedFiles(infos))
}

func TestRepositoryRoot(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.Commit("chore: scaffold", map[string]string{"pkg/main.go": "package main\n"})

	root, err := RepositoryRoot(filepath.Join(r.Dir, "pkg"))
	require.NoError(t, err)
	assert.Equal(t, r.Dir, root)
	assert.True(t, IsRepository(r.Dir))
}
