package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// identity is used in place of the color functions for plain output.
func identity(a ...interface{}) string {
	return fmt.Sprint(a...)
}

// FormatError formats a CLIError for the terminal. Colors are dropped when
// plain is set or fatih/color has detected a non-terminal.
func FormatError(err *CLIError, plain bool) string {
	if err == nil {
		return ""
	}

	paint := func(f func(a ...interface{}) string) func(a ...interface{}) string {
		if plain {
			return identity
		}
		return f
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(errorLabel)("Error"),
		paint(categoryFmt)(err.Category.String()),
		paint(errorMsg)(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(usageLabel)("Usage: "), paint(usageText)(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixLabel)("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(bullet)("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints any error to w. Errors that are not a CLIError are shown
// as runtime errors.
func FprintError(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	fmt.Fprint(w, FormatError(cliErr, plain))
}
