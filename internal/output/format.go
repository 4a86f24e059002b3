// Package output provides terminal output formatting for the autochangelog CLI.
// It depends only on leaf packages so commands can share it freely.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/commits"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim labeled rule, used around generated text.
func PrintSeparator(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintHeader prints a bold cyan section header.
func PrintHeader(out io.Writer, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n", cyan(title))
}

// PrintSuccess prints a green checkmark line.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintNotice prints a yellow informational line.
func PrintNotice(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("•"), message)
}

// VersionSummary describes a computed version bump.
type VersionSummary struct {
	PreviousVersion string
	Version         string
	Increment       string
	Tally           []commits.TallyItem
}

// PrintVersionSummary prints the bump and the per-category commit counts.
func PrintVersionSummary(out io.Writer, s VersionSummary) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	previous := s.PreviousVersion
	if previous == "" {
		previous = "(none)"
	}
	fmt.Fprintf(out, "%s %s → %s %s\n", bold("Version:"), previous, bold(s.Version), dim("("+s.Increment+")"))

	if len(s.Tally) == 0 {
		return
	}
	fmt.Fprintf(out, "%s\n", bold("Commits:"))
	for _, item := range s.Tally {
		fmt.Fprintf(out, "  %-9s %d\n", item.Category, item.Count)
	}
}
