package commits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected []Commit
	}{
		"two full lines": {
			input: "a1|feat: add login|alice|2024-01-01\na2|fix: null check|bob|2024-01-02",
			expected: []Commit{
				{Hash: "a1", Message: "feat: add login", Author: "alice", Date: "2024-01-01"},
				{Hash: "a2", Message: "fix: null check", Author: "bob", Date: "2024-01-02"},
			},
		},
		"blank lines are dropped": {
			input: "\n\na1|docs: readme|alice|2024-01-01\n   \n",
			expected: []Commit{
				{Hash: "a1", Message: "docs: readme", Author: "alice", Date: "2024-01-01"},
			},
		},
		"short line leaves trailing fields empty": {
			input: "a1|chore: bump",
			expected: []Commit{
				{Hash: "a1", Message: "chore: bump"},
			},
		},
		"extra fields are ignored": {
			input: "a1|feat: a|b|alice|2024-01-01",
			expected: []Commit{
				{Hash: "a1", Message: "feat: a", Author: "b", Date: "alice"},
			},
		},
		"windows line endings": {
			input: "a1|fix: x|alice|2024-01-01\r\n",
			expected: []Commit{
				{Hash: "a1", Message: "fix: x", Author: "alice", Date: "2024-01-01"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n \n"))
}

func TestCommitString(t *testing.T) {
	c := Commit{Hash: "a1", Message: "feat: x", Author: "alice", Date: "2024-01-01"}
	assert.Equal(t, "a1|feat: x|alice|2024-01-01", c.String())
}
