package symfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/ksymgen/pkg/symtab"
)

func TestWriteReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbol_table.rs")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	require.NoError(t, Write(path, FormatRust, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `(0x80200000, "_start"),`)
	require.NotContains(t, string(data), "stale")

	// No temporary litter next to the output.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbol_table.rs")
	previous := []byte("pub const SYMBOL_TABLE: &[(usize, &str)] = &[\n];\n")
	require.NoError(t, os.WriteFile(path, previous, 0o644))

	bad := &symtab.Table{Symbols: []symtab.Symbol{{Addr: 1, Name: "bad\xff"}}}
	err := Write(path, FormatRust, bad)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, previous, data)

	entries, readDirErr := os.ReadDir(dir)
	require.NoError(t, readDirErr)
	require.Len(t, entries, 1)
}

func TestWriteArtifactMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbol_table.rs")
	require.NoError(t, Write(path, FormatRust, sampleTable()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFailsWithoutParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "symtab_gen.go")
	err := Write(path, FormatGo, sampleTable())
	require.Error(t, err)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestWriteDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, format := range knownFormats() {
		t.Run(format.String(), func(t *testing.T) {
			first := filepath.Join(dir, "first."+format.String())
			second := filepath.Join(dir, "second."+format.String())
			require.NoError(t, Write(first, format, sampleTable()))
			require.NoError(t, Write(second, format, sampleTable()))

			a, err := os.ReadFile(first)
			require.NoError(t, err)
			b, err := os.ReadFile(second)
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}
}
