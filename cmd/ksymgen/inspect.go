package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

type inspectParams struct {
	*pipelineParams

	output string
	limit  int
}

func addInspectParams(cmd commander) *inspectParams {
	params := &inspectParams{}
	params.pipelineParams = addPipelineParams(cmd)
	cmd.Flag("output", "How to render the result: table or yaml.").Default("table").EnumVar(&params.output, "table", "yaml")
	cmd.Flag("limit", "Show at most this many symbols, 0 for all.").Default("0").IntVar(&params.limit)
	return params
}

type inspectReport struct {
	Binary   string          `yaml:"binary"`
	Entries  int             `yaml:"entries"`
	Filtered int             `yaml:"filtered,omitempty"`
	Skipped  int             `yaml:"skipped,omitempty"`
	Symbols  []inspectSymbol `yaml:"symbols"`
}

type inspectSymbol struct {
	Addr string `yaml:"addr"`
	Name string `yaml:"name"`
}

// inspect runs the pipeline and prints what would be embedded, without
// touching the output artifact.
func inspect(ctx context.Context, params *inspectParams) error {
	table, err := params.table()
	if err != nil {
		return err
	}
	out := output(ctx)

	// Entries always reports the full table; limit trims display only.
	shown := table.Symbols
	if params.limit > 0 && len(shown) > params.limit {
		shown = shown[:params.limit]
	}

	if params.output == "yaml" {
		report := inspectReport{
			Binary:   params.binary,
			Entries:  len(table.Symbols),
			Filtered: table.Filtered,
			Skipped:  table.Skipped,
			Symbols:  make([]inspectSymbol, 0, len(shown)),
		}
		for _, s := range shown {
			report.Symbols = append(report.Symbols, inspectSymbol{
				Addr: fmt.Sprintf("%#x", s.Addr),
				Name: s.Name,
			})
		}
		data, err := yaml.Marshal(&report)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintln(out, "Binary:", params.binary)
	fmt.Fprintln(out, "Entries:", humanize.Comma(int64(len(table.Symbols))))
	fmt.Fprintln(out, "Name bytes:", humanize.Bytes(uint64(table.NameBytes())))
	fmt.Fprintln(out, "Filtered:", table.Filtered)
	fmt.Fprintln(out, "Skipped:", table.Skipped)

	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Address", "Name"})
	for _, s := range shown {
		tw.Append([]string{fmt.Sprintf("%016x", s.Addr), s.Name})
	}
	tw.Render()
	return nil
}
