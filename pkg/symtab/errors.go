package symtab

import (
	"errors"
	"fmt"
)

// ErrToolUnavailable reports that the symbol lister could not be
// started at all: the executable was not found on PATH, or the OS
// refused to run it. Errors of this class wrap the sentinel.
var ErrToolUnavailable = errors.New("symbol lister unavailable")

// ToolError reports that the symbol lister started but exited
// unsuccessfully. It carries the exit status and whatever the tool
// wrote to stderr, which for nm typically names the unreadable input.
type ToolError struct {
	Tool     string
	ExitCode int
	Stderr   []byte
}

func (e *ToolError) Error() string {
	if len(e.Stderr) == 0 {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.ExitCode, trimTrailingNewlines(e.Stderr))
}

// ParseError reports a line that qualified for extraction but whose
// address field could not be interpreted. The first such line aborts
// the run.
type ParseError struct {
	// Line is the 1-based line number within the nm listing.
	Line int
	// Field is the offending field text.
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: bad address %q: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func trimTrailingNewlines(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
