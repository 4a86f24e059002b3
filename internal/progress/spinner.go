package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Indicator reports the start and end of one long-running step. On a terminal
// it animates a spinner; elsewhere it prints a single line per event.
type Indicator struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	message string
}

// NewIndicator creates an Indicator writing to out.
func NewIndicator(out io.Writer, caps TerminalCapabilities) *Indicator {
	return &Indicator{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins reporting message.
func (i *Indicator) Start(message string) {
	i.message = message
	if !i.caps.IsTTY {
		fmt.Fprintf(i.out, "%s...\n", message)
		return
	}

	i.spin = spinner.New(spinner.CharSets[i.symbols.SpinnerSet], spinnerInterval,
		spinner.WithWriter(i.out),
		spinner.WithHiddenCursor(true),
	)
	i.spin.Suffix = " " + message
	i.spin.Start()
}

// Stop ends the step, marking it as succeeded or failed.
func (i *Indicator) Stop(success bool) {
	symbol := i.symbols.Checkmark
	if !success {
		symbol = i.symbols.Failure
	}

	if i.spin != nil {
		i.spin.Stop()
		i.spin = nil
	}
	fmt.Fprintf(i.out, "%s %s\n", symbol, i.message)
}

// Track runs fn between Start and Stop and returns its error.
func (i *Indicator) Track(message string, fn func() error) error {
	i.Start(message)
	err := fn()
	i.Stop(err == nil)
	return err
}
