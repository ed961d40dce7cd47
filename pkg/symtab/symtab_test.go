package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableSortIsStable(t *testing.T) {
	table := &Table{Symbols: []Symbol{
		{Addr: 0x80200020, Name: "kernel_main"},
		{Addr: 0x80200000, Name: "_start"},
		{Addr: 0x80200020, Name: "rust_main"},
	}}
	table.Sort()
	require.Equal(t, []Symbol{
		{Addr: 0x80200000, Name: "_start"},
		{Addr: 0x80200020, Name: "kernel_main"},
		{Addr: 0x80200020, Name: "rust_main"},
	}, table.Symbols)
}

func TestTableResolve(t *testing.T) {
	table := &Table{Symbols: []Symbol{
		{Addr: 0x80200000, Name: "_start"},
		{Addr: 0x80200020, Name: "kernel_main"},
		{Addr: 0x80200100, Name: "trap_handler"},
	}}
	table.Sort()

	for _, tc := range []struct {
		name string
		addr uint64
		want string
		ok   bool
	}{
		{name: "exact first", addr: 0x80200000, want: "_start", ok: true},
		{name: "inside first", addr: 0x8020001f, want: "_start", ok: true},
		{name: "exact middle", addr: 0x80200020, want: "kernel_main", ok: true},
		{name: "inside middle", addr: 0x802000ff, want: "kernel_main", ok: true},
		{name: "past last", addr: 0xffffffffffffffff, want: "trap_handler", ok: true},
		{name: "below first", addr: 0x80100000, ok: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sym, ok := table.Resolve(tc.addr)
			require.Equal(t, tc.ok, ok)
			if ok {
				require.Equal(t, tc.want, sym.Name)
			}
		})
	}
}

func TestTableResolveEmpty(t *testing.T) {
	table := &Table{}
	_, ok := table.Resolve(0x80200000)
	require.False(t, ok)
}

func TestTableNameBytes(t *testing.T) {
	table := &Table{Symbols: []Symbol{
		{Addr: 1, Name: "_start"},
		{Addr: 2, Name: "kernel_main"},
	}}
	require.Equal(t, len("_start")+len("kernel_main"), table.NameBytes())
}
