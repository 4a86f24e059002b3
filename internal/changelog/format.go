package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for an entry section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps lower-cased "### " section names to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	"added":             {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":           {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated":        {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":           {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":             {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":          {Color: color.New(color.FgMagenta), Icon: "🔒"},
	"technical details": {Color: color.New(color.FgCyan), Icon: "⚙"},
}

var defaultSectionStyle = SectionStyle{Color: color.New(color.FgWhite), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatEntry writes a generated entry to w with terminal styling: a bold
// version header, colored section headers and wrapped bullets.
func FormatEntry(entry string, w io.Writer, opts FormatOptions) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}

	if opts.Plain {
		_, err := fmt.Fprintln(w, entry)
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	style := defaultSectionStyle
	bold := color.New(color.Bold).SprintFunc()

	for _, line := range strings.Split(entry, "\n") {
		var err error
		switch {
		case strings.HasPrefix(line, "### "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "### "))
			style = styleFor(name)
			colored := style.Color.SprintFunc()
			_, err = fmt.Fprintf(w, "%s %s\n", colored(style.Icon), colored(name))
		case strings.HasPrefix(line, "## "):
			_, err = fmt.Fprintf(w, "%s\n", bold(line))
		case strings.HasPrefix(line, "- "):
			err = writeBullet(strings.TrimPrefix(line, "- "), style, w, width)
		default:
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}

	return nil
}

func styleFor(section string) SectionStyle {
	if style, ok := sectionStyles[strings.ToLower(section)]; ok {
		return style
	}
	return defaultSectionStyle
}

// writeBullet writes a single bullet wrapped to width.
func writeBullet(text string, style SectionStyle, w io.Writer, width int) error {
	prefix := "  - "
	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// Summarize returns a one-line description of an entry: its header and the
// number of bullets.
func Summarize(entry string) string {
	header := ""
	bullets := 0
	for _, line := range strings.Split(entry, "\n") {
		switch {
		case header == "" && strings.HasPrefix(line, entryHeaderPrefix):
			header = strings.TrimSpace(strings.TrimPrefix(line, "## "))
		case strings.HasPrefix(strings.TrimSpace(line), "- "):
			bullets++
		}
	}
	if header == "" {
		header = "untitled entry"
	}
	return fmt.Sprintf("%s (%d changes)", header, bullets)
}
