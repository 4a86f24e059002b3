package changelog

import "strings"

// Marker is the sentinel line that marks where new entries are inserted.
const Marker = "<!-- AI_APPEND_HERE -->"

// DefaultExcerptLines is the number of history lines forwarded to generation
// when the caller does not choose one.
const DefaultExcerptLines = 100

const (
	// headerLineCount is how many leading lines are kept when an excerpt is cut short.
	headerLineCount = 10
	omittedNotice   = "... [earlier entries omitted for context] ..."
)

// Origin records where a Document was read from.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
	OriginNew    Origin = "new"
)

// Document is the full changelog text. It is treated as a value: Splice
// returns a new Document and never modifies the receiver.
type Document struct {
	// Path is where the document is saved.
	Path string
	// Text is the complete document, never a truncated excerpt.
	Text string
	// Origin is where Text came from.
	Origin Origin
	// Source names the remote source when Origin is OriginRemote.
	Source string
}

// NewDocument creates a Document for path with the given content.
func NewDocument(path, text string, origin Origin) *Document {
	return &Document{Path: path, Text: text, Origin: origin}
}

// HasMarker reports whether the document contains the insertion marker.
func (d *Document) HasMarker() bool {
	return strings.Contains(d.Text, Marker)
}

// IsEmpty reports whether the document has no content.
func (d *Document) IsEmpty() bool {
	return d.Text == ""
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(strings.Split(d.Text, "\n"))
}

// Excerpt returns at most maxLines lines of recent history.
//
// With a marker, the lines from maxLines before the marker through the
// marker line are returned; when that window starts past the document
// header, the first lines of the document and an omission notice are
// prepended. Without a marker, the last maxLines lines are returned.
// maxLines <= 0 selects DefaultExcerptLines.
func (d *Document) Excerpt(maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultExcerptLines
	}

	lines := strings.Split(d.Text, "\n")

	markerIndex := -1
	for i, line := range lines {
		if strings.Contains(line, Marker) {
			markerIndex = i
			break
		}
	}

	if markerIndex == -1 {
		if len(lines) > maxLines {
			lines = lines[len(lines)-maxLines:]
		}
		return strings.Join(lines, "\n")
	}

	start := max(0, markerIndex-maxLines)
	excerpt := strings.Join(lines[start:markerIndex+1], "\n")

	if start > headerLineCount {
		header := strings.Join(lines[:headerLineCount], "\n")
		excerpt = header + "\n\n" + omittedNotice + "\n\n" + excerpt
	}

	return excerpt
}

// Splice returns a new Document with entry inserted.
//
// If the marker is present, entry is inserted immediately before its first
// occurrence, so the marker now follows the new entry. Otherwise entry is
// appended after the existing content (which is made to end in a newline)
// and a new marker is added after it.
func (d *Document) Splice(entry string) *Document {
	entry = strings.TrimSpace(entry)

	var text string
	switch {
	case d.HasMarker():
		text = strings.Replace(d.Text, Marker, entry+"\n\n"+Marker, 1)
	case d.IsEmpty():
		text = entry + "\n\n" + Marker
	default:
		text = d.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += "\n" + entry + "\n\n" + Marker
	}

	return &Document{
		Path:   d.Path,
		Text:   text,
		Origin: d.Origin,
		Source: d.Source,
	}
}
