package symfile

import (
	"fmt"
	"go/token"
	"io"
	"strconv"

	"github.com/grafana/ksymgen/pkg/symtab"
)

// emitGo renders the table as a Go source file holding a single array
// variable. strconv.Quote can escape any byte sequence, so Go output
// never produces an EncodingError.
func emitGo(w io.Writer, table *symtab.Table, o options) error {
	pkg := o.pkg
	if pkg == "" {
		pkg = defaultGoPackage
	}
	name := o.table
	if name == "" {
		name = defaultGoTable
	}
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("invalid Go package name %q", pkg)
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("invalid Go identifier %q for the table", name)
	}

	if _, err := fmt.Fprintf(w, "%s\n\npackage %s\n\n", generatedFileNote, pkg); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "// %s maps kernel code addresses to the function symbols that\n// cover them.\n", name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "var %s = [%d]struct {\n\tAddr uint64\n\tName string\n}{\n", name, len(table.Symbols)); err != nil {
		return err
	}
	for _, s := range table.Symbols {
		if _, err := fmt.Fprintf(w, "\t{%#x, %s},\n", s.Addr, strconv.Quote(s.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
