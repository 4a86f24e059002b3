// Package prompt assembles the bounded generation context for a changelog
// entry: commits, changed files, diff and a changelog excerpt, plus the
// output contract the generated text must follow.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/commits"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Sections are the entry sections the generator may use, in order.
var Sections = []string{"Added", "Changed", "Fixed", "Removed", "Security", "Technical Details"}

const (
	// DefaultMaxDiffBytes bounds the diff forwarded to generation.
	DefaultMaxDiffBytes = 60000
	// DefaultMaxListBytes bounds the commit list and the changed-file list.
	DefaultMaxListBytes = 20000

	truncatedDiffNotice = "... [diff truncated] ..."
	truncatedListNotice = "... [list truncated] ..."
	emptyPlaceholder    = "(none)"
)

// Context is everything a single generation request is built from.
// It is ephemeral and never persisted.
type Context struct {
	Target      string
	LatestTag   string
	CommitCount int
	// Commits is the raw commit text, one "hash|message|author|date" per line.
	Commits      string
	ChangedFiles string
	Diff         string
	// Changelog is the excerpt of recent history, not the full document.
	Changelog  string
	NewVersion string
	Categories commits.CategorySet
	Date       time.Time
}

// Options bounds the size of the rendered prompt.
type Options struct {
	MaxDiffBytes int
	MaxListBytes int
}

// DefaultOptions returns the default prompt bounds.
func DefaultOptions() Options {
	return Options{
		MaxDiffBytes: DefaultMaxDiffBytes,
		MaxListBytes: DefaultMaxListBytes,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxDiffBytes <= 0 {
		o.MaxDiffBytes = DefaultMaxDiffBytes
	}
	if o.MaxListBytes <= 0 {
		o.MaxListBytes = DefaultMaxListBytes
	}
	return o
}

// Prompt is a rendered generation request.
type Prompt struct {
	System string
	User   string
}

// templateData is the view passed to the templates.
type templateData struct {
	Target          string
	LatestTag       string
	CommitCount     int
	CategorySummary string
	Commits         string
	ChangedFiles    string
	Diff            string
	Changelog       string
	NewVersion      string
	Header          string
	Sections        string
	NoUpdateToken   string
}

// Build renders the prompt for c. Oversized inputs are truncated at a line
// boundary and marked with a notice.
func Build(c Context, opts Options) (Prompt, error) {
	opts = opts.withDefaults()

	date := c.Date
	if date.IsZero() {
		date = time.Now()
	}

	data := templateData{
		Target:          orPlaceholder(c.Target),
		LatestTag:       orPlaceholder(c.LatestTag),
		CommitCount:     c.CommitCount,
		CategorySummary: orPlaceholder(c.Categories.Summary()),
		Commits:         orPlaceholder(Truncate(c.Commits, opts.MaxListBytes, truncatedListNotice)),
		ChangedFiles:    orPlaceholder(Truncate(c.ChangedFiles, opts.MaxListBytes, truncatedListNotice)),
		Diff:            orPlaceholder(Truncate(c.Diff, opts.MaxDiffBytes, truncatedDiffNotice)),
		Changelog:       orPlaceholder(c.Changelog),
		NewVersion:      c.NewVersion,
		Header:          changelog.EntryHeader(c.NewVersion, date),
		Sections:        strings.Join(Sections, ", "),
		NoUpdateToken:   changelog.NoUpdateToken,
	}

	system, err := render("system.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := render("user.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}

	return Prompt{System: system, User: user}, nil
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Truncate shortens text to at most limit bytes, cutting at the last line
// boundary and appending notice on its own line. Text within the limit, or a
// non-positive limit, is returned unchanged. A cut inside a single line
// never splits a rune.
func Truncate(text string, limit int, notice string) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := text[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	} else {
		end := limit
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		cut = text[:end]
	}
	return cut + "\n" + notice
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyPlaceholder
	}
	return s
}
