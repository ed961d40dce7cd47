package symfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/grafana/ksymgen/pkg/symtab"
)

// The symf layout, all little-endian: a fixed header, count 16-byte
// entries, a string blob with one NUL-terminated name per entry, and a
// trailing CRC-32C over everything before it. Entries keep the order
// they were emitted in.
const (
	symfMagic   uint32 = 0x4d59534b // "KSYM"
	symfVersion uint32 = 1

	symfHeaderSize = 24
	symfEntrySize  = 16
	symfTrailerLen = 4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

type symfHeader struct {
	Magic       uint32
	Version     uint32
	Count       uint32
	Reserved    uint32
	StringsSize uint64
}

type symfEntry struct {
	Addr    uint64
	NameOff uint32
	NameLen uint32
}

func emitSymf(w io.Writer, table *symtab.Table) error {
	entries := make([]symfEntry, len(table.Symbols))
	var blob bytes.Buffer
	for i, s := range table.Symbols {
		entries[i] = symfEntry{
			Addr:    s.Addr,
			NameOff: uint32(blob.Len()),
			NameLen: uint32(len(s.Name)),
		}
		blob.WriteString(s.Name)
		blob.WriteByte(0)
	}
	if uint64(blob.Len()) > math.MaxUint32 {
		return errors.New("string table too large")
	}

	hdr := symfHeader{
		Magic:       symfMagic,
		Version:     symfVersion,
		Count:       uint32(len(entries)),
		StringsSize: uint64(blob.Len()),
	}

	crc := crc32.New(castagnoli)
	mw := io.MultiWriter(w, crc)
	if err := binary.Write(mw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, entries); err != nil {
		return err
	}
	if _, err := mw.Write(blob.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, crc.Sum32())
}

// ParseSymf decodes a symf file back into a table, validating the
// checksum and the layout. It is the loader-side counterpart of the
// symf emitter and doubles as the format's conformance check.
func ParseSymf(data []byte) (*symtab.Table, error) {
	if len(data) < symfHeaderSize+symfTrailerLen {
		return nil, errors.New("truncated symf file")
	}
	body := data[:len(data)-symfTrailerLen]
	want := binary.LittleEndian.Uint32(data[len(data)-symfTrailerLen:])
	if crc32.Checksum(body, castagnoli) != want {
		return nil, errors.New("crc mismatch")
	}

	var hdr symfHeader
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != symfMagic {
		return nil, errors.New("invalid magic number")
	}
	if hdr.Version != symfVersion {
		return nil, errors.New("unsupported version")
	}
	size := symfHeaderSize + int64(hdr.Count)*symfEntrySize + int64(hdr.StringsSize)
	if int64(len(body)) != size {
		return nil, errors.New("invalid size")
	}

	blob := body[symfHeaderSize+int(hdr.Count)*symfEntrySize:]
	table := &symtab.Table{Symbols: make([]symtab.Symbol, hdr.Count)}
	for i := 0; i < int(hdr.Count); i++ {
		var e symfEntry
		off := symfHeaderSize + i*symfEntrySize
		if err := binary.Read(bytes.NewReader(body[off:off+symfEntrySize]), binary.LittleEndian, &e); err != nil {
			return nil, err
		}
		end := uint64(e.NameOff) + uint64(e.NameLen)
		if end >= uint64(len(blob)) {
			return nil, fmt.Errorf("entry %d: name out of bounds", i)
		}
		if blob[end] != 0 {
			return nil, fmt.Errorf("entry %d: missing name terminator", i)
		}
		table.Symbols[i] = symtab.Symbol{
			Addr: e.Addr,
			Name: string(blob[e.NameOff:end]),
		}
	}
	return table, nil
}
