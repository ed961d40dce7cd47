package symfile

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/ksymgen/pkg/symtab"
)

func sampleTable() *symtab.Table {
	return &symtab.Table{Symbols: []symtab.Symbol{
		{Addr: 0x80200000, Name: "_start"},
		{Addr: 0x80200020, Name: "kernel_main"},
	}}
}

func TestEmitGo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, FormatGo, sampleTable()))

	expected := `// Code generated by ksymgen. DO NOT EDIT.

package kernel

// KernelSymtab maps kernel code addresses to the function symbols that
// cover them.
var KernelSymtab = [2]struct {
	Addr uint64
	Name string
}{
	{0x80200000, "_start"},
	{0x80200020, "kernel_main"},
}
`
	require.Equal(t, expected, buf.String())
}

func TestEmitGoRoundTrip(t *testing.T) {
	table := &symtab.Table{Symbols: []symtab.Symbol{
		{Addr: 0x80200000, Name: "_start"},
		{Addr: 0x80200020, Name: "kernel_main"},
		{Addr: 0x80200020, Name: "rust_main"},
		{Addr: 0x80200040, Name: `odd"name\with escapes`},
		{Addr: 0x80200060, Name: "core::panicking::panic_fmt"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, FormatGo, table, WithPackage("ksyms"), WithTableName("Table")))

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "symtab_gen.go", buf.Bytes(), 0)
	require.NoError(t, err)
	require.Equal(t, "ksyms", f.Name.Name)
	require.Equal(t, table.Symbols, parsePairs(t, f, "Table"))
}

// parsePairs reads the (address, name) pairs back out of the generated
// source, the same way the consuming build would compile them.
func parsePairs(t *testing.T, f *ast.File, name string) []symtab.Symbol {
	t.Helper()
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 || vs.Names[0].Name != name {
				continue
			}
			lit, ok := vs.Values[0].(*ast.CompositeLit)
			require.True(t, ok)
			out := make([]symtab.Symbol, 0, len(lit.Elts))
			for _, el := range lit.Elts {
				pair, ok := el.(*ast.CompositeLit)
				require.True(t, ok)
				require.Len(t, pair.Elts, 2)
				addr, err := strconv.ParseUint(pair.Elts[0].(*ast.BasicLit).Value, 0, 64)
				require.NoError(t, err)
				sym, err := strconv.Unquote(pair.Elts[1].(*ast.BasicLit).Value)
				require.NoError(t, err)
				out = append(out, symtab.Symbol{Addr: addr, Name: sym})
			}
			return out
		}
	}
	t.Fatalf("declaration %s not found", name)
	return nil
}

func TestEmitGoEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, FormatGo, &symtab.Table{}))

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "symtab_gen.go", buf.Bytes(), 0)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "var KernelSymtab = [0]struct {")
}

func TestEmitGoRejectsBadIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Emit(&buf, FormatGo, sampleTable(), WithPackage("bad-pkg")))
	require.Error(t, Emit(&buf, FormatGo, sampleTable(), WithTableName("func")))
}
