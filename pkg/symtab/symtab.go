// Package symtab builds the kernel's embeddable symbol table.
//
// The pipeline is linear: an Extractor invokes an external nm-compatible
// symbol lister against the compiled kernel image, a Parser turns the
// captured listing into Symbol entries and filters them to code-segment
// function symbols, and the resulting Table is serialized by the symfile
// subpackage into an artifact the kernel build compiles in. The whole
// table is recomputed from scratch on every run; there is no incremental
// state.
package symtab

import (
	"sort"
)

// Symbol is one function symbol extracted from the kernel image.
type Symbol struct {
	// Addr is the link-time virtual address of the symbol, wide enough
	// for any of the kernel's 64-bit targets.
	Addr uint64
	// Name is the symbol name exactly as the extractor emitted it,
	// demangled or mangled depending on the configured demangle mode.
	Name string
}

// Table is the ordered sequence of symbols that survived filtering,
// together with counters describing what the parser dropped.
type Table struct {
	Symbols []Symbol

	// Skipped counts input lines that did not have the expected
	// three-field shape and were ignored without producing an entry.
	Skipped int
	// Filtered counts well-formed lines whose classification marker
	// excluded them (data, bss, undefined and so on).
	Filtered int
}

// Sort orders the table ascending by address. The sort is stable:
// aliases sharing an address keep the order the extractor emitted them
// in.
func (t *Table) Sort() {
	sort.SliceStable(t.Symbols, func(i, j int) bool {
		return t.Symbols[i].Addr < t.Symbols[j].Addr
	})
}

// Resolve returns the symbol covering addr, defined as the entry with
// the greatest address not exceeding addr. The table must be sorted.
func (t *Table) Resolve(addr uint64) (Symbol, bool) {
	if len(t.Symbols) == 0 {
		return Symbol{}, false
	}
	if addr < t.Symbols[0].Addr {
		return Symbol{}, false
	}
	i := sort.Search(len(t.Symbols), func(i int) bool {
		return addr < t.Symbols[i].Addr
	})
	return t.Symbols[i-1], true
}

// NameBytes returns the total size of all symbol names.
func (t *Table) NameBytes() int {
	n := 0
	for i := range t.Symbols {
		n += len(t.Symbols[i].Name)
	}
	return n
}
