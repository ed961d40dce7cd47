package main

import (
	"strings"

	"github.com/go-kit/log/level"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/grafana/ksymgen/pkg/symtab"
)

const envPrefix = "KSYMGEN_"

// defaultBinary is where the kernel build drops the image this tool is
// normally pointed at.
const defaultBinary = "target/riscv64gc-unknown-none-elf/release/kernel"

type commander interface {
	Flag(name, help string) *kingpin.FlagClause
	Arg(name, help string) *kingpin.ArgClause
}

type pipelineParams struct {
	binary   string
	nmPath   string
	nmFlags  []string
	demangle string
	markers  string
	noSort   bool

	// runner is swapped in tests to avoid spawning a real lister.
	runner symtab.Runner
}

func addPipelineParams(cmd commander) *pipelineParams {
	params := &pipelineParams{}

	cmd.Flag("binary", "Path to the compiled kernel image to read symbols from.").Default(defaultBinary).Envar(envPrefix + "BINARY").StringVar(&params.binary)
	cmd.Flag("nm", "Symbol lister executable to invoke.").Default("nm").Envar(envPrefix + "NM").StringVar(&params.nmPath)
	cmd.Flag("nm-flag", "Extra flag to pass to the symbol lister. Repeatable.").StringsVar(&params.nmFlags)
	cmd.Flag("demangle", "Demangle mode: tool (the lister's -C flag), none, simplified, templates or full.").Default(string(symtab.DemangleTool)).Envar(envPrefix+"DEMANGLE").EnumVar(&params.demangle,
		string(symtab.DemangleTool), string(symtab.DemangleNone), string(symtab.DemangleSimplified), string(symtab.DemangleTemplates), string(symtab.DemangleFull))
	cmd.Flag("markers", "Comma-separated nm classification codes to keep.").Default("T").Envar(envPrefix + "MARKERS").StringVar(&params.markers)
	cmd.Flag("no-sort", "Keep the lister's symbol order instead of sorting by address.").Default("false").BoolVar(&params.noSort)

	return params
}

// table runs the extraction pipeline: invoke the lister, parse its
// listing, and sort unless configured otherwise.
func (params *pipelineParams) table() (*symtab.Table, error) {
	mode := symtab.DemangleMode(params.demangle)
	extractor := &symtab.Extractor{
		Tool:     params.nmPath,
		Flags:    params.nmFlags,
		Demangle: mode,
		Runner:   params.runner,
	}
	listing, err := extractor.ListSymbols(params.binary)
	if err != nil {
		return nil, err
	}

	parser := &symtab.Parser{
		Markers:  splitMarkers(params.markers),
		Demangle: mode,
	}
	table, err := parser.Parse(listing)
	if err != nil {
		return nil, err
	}
	if table.Skipped > 0 {
		level.Warn(logger).Log("msg", "ignored listing lines with unexpected field count", "lines", table.Skipped)
	}
	if !params.noSort {
		table.Sort()
	}
	return table, nil
}

func splitMarkers(s string) []string {
	var markers []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	return markers
}
