package symtab

import (
	"bytes"
	"strconv"
	"strings"
)

// DefaultMarkers matches globally defined text symbols, the nm code for
// functions in the executable code segment.
var DefaultMarkers = []string{"T"}

// Parser turns a captured nm listing into a Table.
//
// nm emits one symbol per line as "address marker name". Lines with any
// other field count (undefined symbols omit the address, some formats
// append extra columns) do not qualify and are counted, not parsed.
// Qualifying lines whose marker is not in Markers are counted as
// filtered. A qualifying line whose address field is not hexadecimal
// aborts the whole parse rather than shortening the table.
type Parser struct {
	// Markers are the accepted classification codes. Empty means
	// DefaultMarkers.
	Markers []string
	// Demangle is applied to each accepted name. Tool mode is a no-op
	// here; the extractor already asked the lister to demangle.
	Demangle DemangleMode
}

// Parse scans listing line by line and returns the table in encounter
// order. Aliases are preserved: every accepted line produces an entry,
// even when several share an address.
func (p *Parser) Parse(listing []byte) (*Table, error) {
	markers := p.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	t := &Table{}
	line := 0
	for len(listing) > 0 {
		line++
		i := bytes.IndexByte(listing, '\n')
		var raw []byte
		if i == -1 {
			raw = listing
			listing = nil
		} else {
			raw = listing[:i]
			listing = listing[i+1:]
		}

		fields := strings.Fields(string(raw))
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			t.Skipped++
			continue
		}
		if !markerAccepted(markers, fields[1]) {
			t.Filtered++
			continue
		}
		addr, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Field: fields[0], Err: err}
		}
		t.Symbols = append(t.Symbols, Symbol{
			Addr: addr,
			Name: p.Demangle.demangleName(fields[2]),
		})
	}
	return t, nil
}

func markerAccepted(markers []string, marker string) bool {
	for _, m := range markers {
		if m == marker {
			return true
		}
	}
	return false
}
