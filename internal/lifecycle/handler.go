// Package lifecycle wraps CLI command execution with timing and completion
// reporting.
//
// The package is intentionally minimal: no event bus, no goroutines. Each
// wrapper captures the start time, executes the provided function, computes
// the duration and reports it to the handler.
package lifecycle

import (
	"time"

	"github.com/maxbolgarin/logze/v2"
)

// Handler receives command completion events.
type Handler interface {
	// OnCommandComplete is called when a CLI command finishes execution.
	OnCommandComplete(name string, success bool, duration time.Duration)
}

// LogHandler reports completions through the structured logger.
type LogHandler struct {
	log logze.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler() *LogHandler {
	return &LogHandler{log: logze.With("component", "lifecycle")}
}

func (h *LogHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	h.log.Debug("command finished", "command", name, "success", success, "duration", duration.Round(time.Millisecond).String())
}

// Run executes fn and reports its outcome to handler. A nil handler is allowed.
func Run(handler Handler, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if handler != nil {
		handler.OnCommandComplete(name, err == nil, time.Since(start))
	}
	return err
}
