package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantErr  bool
		wantLine int
	}{
		"empty":       {data: ""},
		"whitespace":  {data: "  \n\t\n"},
		"valid":       {data: "changelog_path: CHANGELOG.md\nagent:\n  type: claude\n"},
		"bad indent":  {data: "agent:\n  type: claude\n model: x\n", wantErr: true},
		"unclosed":    {data: "target: [a, b\n", wantErr: true},
		"tab in yaml": {data: "agent:\n\ttype: claude\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "test.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "test.yml", verr.FilePath)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, verr.Line)
			}
		})
	}
}

func TestValidateYAMLSyntax_MissingFile(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "nope.yml")))
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"with line": {
			err:  ValidationError{FilePath: "a.yml", Line: 3, Column: 5, Message: "bad"},
			want: "a.yml:3:5: bad",
		},
		"with field": {
			err:  ValidationError{FilePath: "a.yml", Field: "agent.type", Message: "bad"},
			want: "a.yml: field 'agent.type': bad",
		},
		"plain": {
			err:  ValidationError{FilePath: "a.yml", Message: "bad"},
			want: "a.yml: bad",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExtractLineColumn(t *testing.T) {
	t.Parallel()

	line, col := extractLineColumn("yaml: line 5: could not find expected ':'")
	assert.Equal(t, 5, line)
	assert.Equal(t, 1, col)

	line, col = extractLineColumn("something else")
	assert.Zero(t, line)
	assert.Zero(t, col)

	assert.Equal(t, "could not find expected ':'", cleanYAMLError("yaml: line 5: could not find expected ':'"))
	assert.Equal(t, "plain", cleanYAMLError("plain"))
}

func TestDefaultConfigTemplate_LoadsAsDefaults(t *testing.T) {
	clearCIEnv(t)

	path := filepath.Join(t.TempDir(), ".autochangelog.yml")
	require.NoError(t, os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644))

	fromTemplate, err := loadProject(t, path)
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	fromDefaults, err := loadProject(t, "")
	require.NoError(t, err)

	assert.Equal(t, fromDefaults, fromTemplate)
}

func TestKnownKeys_Consistent(t *testing.T) {
	t.Parallel()

	seen := make(map[string]string)
	for path, schema := range KnownKeys {
		assert.Equal(t, path, schema.Path, "schema path must match its key")
		assert.NotEmpty(t, schema.Description, path)
		if schema.EnvVar != "" {
			other, dup := seen[schema.EnvVar]
			assert.False(t, dup, "%s maps to both %s and %s", schema.EnvVar, other, path)
			seen[schema.EnvVar] = path
		}
	}

	keys := SortedKeys()
	require.Len(t, keys, len(KnownKeys))
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1].Path, keys[i].Path)
	}

	_, err := GetKeySchema("agent.type")
	assert.NoError(t, err)
	_, err = GetKeySchema("agent.nope")
	assert.ErrorAs(t, err, &ErrUnknownKey{})
}
