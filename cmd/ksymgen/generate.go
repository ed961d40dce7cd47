package main

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/grafana/ksymgen/pkg/symtab/symfile"
)

type generateParams struct {
	*pipelineParams

	output    string
	format    string
	goPackage string
	tableName string
}

func addGenerateParams(cmd commander) *generateParams {
	params := &generateParams{}
	params.pipelineParams = addPipelineParams(cmd)

	cmd.Flag("format", "Artifact format to generate.").Default(string(symfile.FormatRust)).Envar(envPrefix+"FORMAT").EnumVar(&params.format,
		string(symfile.FormatGo), string(symfile.FormatRust), string(symfile.FormatSymf))
	cmd.Flag("output", "Destination path. Defaults to the format's location in the kernel tree.").Envar(envPrefix + "OUTPUT").StringVar(&params.output)
	cmd.Flag("go-package", "Package clause for the Go format.").Default("kernel").StringVar(&params.goPackage)
	cmd.Flag("table-name", "Identifier of the generated table declaration.").StringVar(&params.tableName)

	return params
}

func generate(ctx context.Context, params *generateParams) error {
	table, err := params.table()
	if err != nil {
		return err
	}

	format := symfile.Format(params.format)
	path := params.output
	if path == "" {
		path = format.DefaultPath()
	}

	opts := []symfile.Option{symfile.WithPackage(params.goPackage)}
	if params.tableName != "" {
		opts = append(opts, symfile.WithTableName(params.tableName))
	}
	if err := symfile.Write(path, format, table, opts...); err != nil {
		return err
	}

	size := uint64(0)
	if info, err := os.Stat(path); err == nil {
		size = uint64(info.Size())
	}
	level.Info(logger).Log(
		"msg", "symbol table generated",
		"path", path,
		"entries", len(table.Symbols),
		"filtered", table.Filtered,
		"skipped", table.Skipped,
		"size", humanize.Bytes(size),
	)
	return nil
}
