package symtab

import (
	"fmt"

	"github.com/ianlancetaylor/demangle"
)

// DemangleMode selects who turns mangled linker names back into source
// names, and how much decoration survives.
type DemangleMode string

const (
	// DemangleTool delegates to the lister's own -C flag.
	DemangleTool DemangleMode = "tool"
	// DemangleNone keeps names exactly as the linker wrote them.
	DemangleNone DemangleMode = "none"
	// DemangleSimplified strips function parameters and templates.
	DemangleSimplified DemangleMode = "simplified"
	// DemangleTemplates strips function parameters but keeps templates.
	DemangleTemplates DemangleMode = "templates"
	// DemangleFull keeps everything except clone suffixes.
	DemangleFull DemangleMode = "full"
)

var demangleSimplified = []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams, demangle.NoTemplateParams}

var demangleTemplates = []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams}

var demangleFull = []demangle.Option{demangle.NoClones}

// ParseDemangleMode validates a mode name from configuration.
func ParseDemangleMode(s string) (DemangleMode, error) {
	switch m := DemangleMode(s); m {
	case DemangleTool, DemangleNone, DemangleSimplified, DemangleTemplates, DemangleFull:
		return m, nil
	}
	return "", fmt.Errorf("unknown demangle mode %q", s)
}

// options returns the demangler options for a native mode, or nil for
// the modes that leave names untouched in the parser.
func (m DemangleMode) options() []demangle.Option {
	switch m {
	case DemangleSimplified:
		return demangleSimplified
	case DemangleTemplates:
		return demangleTemplates
	case DemangleFull:
		return demangleFull
	}
	return nil
}

// demangleName rewrites one symbol name according to the mode. Names
// that are not mangled, and modes handled outside the parser, pass
// through unchanged.
func (m DemangleMode) demangleName(name string) string {
	opts := m.options()
	if opts == nil {
		return name
	}
	return demangle.Filter(name, opts...)
}
