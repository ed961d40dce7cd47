package symfile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/grafana/ksymgen/pkg/symtab"
)

// Write renders the table in the given format and atomically replaces
// the file at path. On any failure the previous content of path, or its
// absence, is preserved.
func Write(path string, format Format, table *symtab.Table, opts ...Option) error {
	return writeAtomic(path, func(w io.Writer) error {
		return Emit(w, format, table, opts...)
	})
}

// writeAtomic emits into a temporary file next to path and renames it
// into place only after the content is fully written and synced.
func writeAtomic(path string, emit func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return errors.Wrap(err, "create temporary output")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	// CreateTemp creates the file 0600 and rename keeps that mode.
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "chmod temporary output")
	}
	if err = emit(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = syncFD(tmp); err != nil {
		return errors.Wrap(err, "sync temporary output")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "rename output into place")
	}
	return syncPath(dir)
}

func syncPath(path string) (err error) {
	d, err := os.Open(path)
	if err != nil {
		return err
	}
	return syncFD(d)
}

func syncFD(f *os.File) (err error) {
	err = f.Sync()
	if closeErr := f.Close(); err == nil {
		return closeErr
	}
	return err
}
