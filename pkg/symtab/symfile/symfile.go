// Package symfile serializes a symbol table into the artifact the
// kernel build embeds. Three formats are supported: a Go source file, a
// Rust source file, and a compact binary file for loaders that map the
// table directly. All three render the same entry sequence; emission is
// deterministic, so regenerating from an unchanged kernel image yields
// byte-identical output.
package symfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/grafana/ksymgen/pkg/symtab"
)

// Format names a serialization target.
type Format string

const (
	FormatGo   Format = "go"
	FormatRust Format = "rust"
	FormatSymf Format = "symf"
)

func knownFormats() []Format {
	return []Format{FormatGo, FormatRust, FormatSymf}
}

func (f Format) String() string { return string(f) }

// ParseFormat resolves a format name from configuration.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range knownFormats() {
		if f.String() == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// DefaultPath returns the output path the kernel build expects for the
// format when the caller does not override it.
func (f Format) DefaultPath() string {
	switch f {
	case FormatRust:
		return "kernel/src/utils/symbol_table.rs"
	case FormatSymf:
		return "kernel/symtab.symf"
	default:
		return "kernel/symtab_gen.go"
	}
}

// Option configures emission.
type Option func(*options)

type options struct {
	pkg   string // Go package clause
	table string // name of the emitted declaration
}

// WithPackage sets the package clause of the generated Go source.
func WithPackage(pkg string) Option {
	return func(o *options) {
		o.pkg = pkg
	}
}

// WithTableName sets the identifier of the generated declaration.
func WithTableName(name string) Option {
	return func(o *options) {
		o.table = name
	}
}

const (
	defaultGoPackage  = "kernel"
	defaultGoTable    = "KernelSymtab"
	defaultRustTable  = "SYMBOL_TABLE"
	generatedFileNote = "// Code generated by ksymgen. DO NOT EDIT."
)

// EncodingError reports a symbol name that cannot be represented as a
// literal in the target syntax. Names are always escaped rather than
// dropped, so this only fires when escaping itself is impossible, such
// as a non-UTF-8 name in a Rust string literal.
type EncodingError struct {
	Name string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("symbol name %q cannot be encoded in the output syntax", e.Name)
}

// Emit renders the table in the given format. The table is written in
// its current order; sorting is the caller's decision.
func Emit(w io.Writer, format Format, table *symtab.Table, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch format {
	case FormatGo:
		return emitGo(w, table, o)
	case FormatRust:
		return emitRust(w, table, o)
	case FormatSymf:
		return emitSymf(w, table)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
