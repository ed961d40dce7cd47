package symfile

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/grafana/ksymgen/pkg/symtab"
)

// emitRust renders the table the way the kernel's Rust sources consume
// it: one pub const slice of (usize, &str) pairs.
func emitRust(w io.Writer, table *symtab.Table, o options) error {
	name := o.table
	if name == "" {
		name = defaultRustTable
	}
	if !rustIdentifier(name) {
		return fmt.Errorf("invalid Rust identifier %q for the table", name)
	}

	if _, err := fmt.Fprintf(w, "%s\n\npub const %s: &[(usize, &str)] = &[\n", generatedFileNote, name); err != nil {
		return err
	}
	for _, s := range table.Symbols {
		lit, err := rustQuote(s.Name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    (%#x, %s),\n", s.Addr, lit); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "];\n")
	return err
}

// rustQuote renders name as a Rust string literal. A &str literal can
// only hold valid UTF-8, so a name that is not UTF-8 has no escapable
// form and fails with an EncodingError.
func rustQuote(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", &EncodingError{Name: name}
	}
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte('"')
	for _, r := range name {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String(), nil
}

func rustIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
