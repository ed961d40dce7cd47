package symtab

import (
	"errors"
	"fmt"
	"os/exec"
)

const defaultTool = "nm"

// Runner executes an external command and returns its captured stdout.
// The production implementation shells out; tests substitute canned
// listings and failures.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Extractor invokes an nm-compatible symbol lister and captures its
// listing for parsing.
type Extractor struct {
	// Tool is the lister executable, resolved via PATH unless it
	// contains a separator. Empty means "nm".
	Tool string
	// Flags are passed to the tool before the image path.
	Flags []string
	// Demangle selects who demangles names. DemangleTool adds the
	// tool's own -C flag; every other mode leaves the listing mangled
	// for the parser to handle.
	Demangle DemangleMode
	// Runner defaults to the real subprocess runner when nil.
	Runner Runner
}

// ListSymbols runs the lister against the kernel image at binary and
// returns raw listing bytes. A tool that cannot be started yields an
// error wrapping ErrToolUnavailable; a tool that starts and fails
// yields a *ToolError carrying its exit status and stderr.
func (e *Extractor) ListSymbols(binary string) ([]byte, error) {
	tool := e.Tool
	if tool == "" {
		tool = defaultTool
	}
	runner := e.Runner
	if runner == nil {
		runner = execRunner{}
	}

	args := make([]string, 0, len(e.Flags)+2)
	if e.Demangle == DemangleTool {
		args = append(args, "-C")
	}
	args = append(args, e.Flags...)
	args = append(args, binary)

	out, err := runner.Run(tool, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ToolError{
				Tool:     tool,
				ExitCode: exitErr.ExitCode(),
				Stderr:   exitErr.Stderr,
			}
		}
		return nil, fmt.Errorf("%s: %w: %v", tool, ErrToolUnavailable, err)
	}
	return out, nil
}
