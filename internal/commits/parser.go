package commits

import "strings"

// FieldSeparator separates the fields of one commit line: hash|message|author|date.
const FieldSeparator = "|"

// Commit is a single parsed commit line. Fields missing from a short line are empty.
type Commit struct {
	Hash    string
	Message string
	Author  string
	Date    string
}

// Parse splits the listing into commits, one per non-blank line, preserving
// input order. Field counts are not validated: a line with fewer than four
// fields produces a commit with empty trailing fields, and fields past the
// fourth are ignored.
func Parse(data string) []Commit {
	lines := strings.Split(data, "\n")
	commits := make([]Commit, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		commits = append(commits, parseLine(line))
	}

	return commits
}

// parseLine maps positional fields onto a Commit.
func parseLine(line string) Commit {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), FieldSeparator)

	var c Commit
	for i, f := range fields {
		switch i {
		case 0:
			c.Hash = f
		case 1:
			c.Message = f
		case 2:
			c.Author = f
		case 3:
			c.Date = f
		}
	}
	return c
}

// String renders the commit back into its listing form.
func (c Commit) String() string {
	return strings.Join([]string{c.Hash, c.Message, c.Author, c.Date}, FieldSeparator)
}
