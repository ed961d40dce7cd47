package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type resolveParams struct {
	*pipelineParams

	addrs []string
}

func addResolveParams(cmd commander) *resolveParams {
	params := &resolveParams{}
	params.pipelineParams = addPipelineParams(cmd)
	cmd.Arg("addr", "Hex address to resolve, with or without the 0x prefix.").Required().StringsVar(&params.addrs)
	return params
}

// resolve runs the pipeline and answers nearest-preceding-symbol
// queries against it, mirroring what the kernel does with the embedded
// table when it prints a backtrace.
func resolve(ctx context.Context, params *resolveParams) error {
	// A meaningful answer needs address order regardless of how
	// generation was configured.
	params.noSort = false
	table, err := params.table()
	if err != nil {
		return err
	}
	out := output(ctx)

	for _, arg := range params.addrs {
		addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(arg), "0x"), 16, 64)
		if err != nil {
			return fmt.Errorf("bad address %q: %v", arg, err)
		}
		sym, ok := table.Resolve(addr)
		switch {
		case !ok:
			fmt.Fprintf(out, "%#016x: no match\n", addr)
		case addr == sym.Addr:
			fmt.Fprintf(out, "%#016x: %s\n", addr, sym.Name)
		default:
			fmt.Fprintf(out, "%#016x: %s+%#x\n", addr, sym.Name, addr-sym.Addr)
		}
	}
	return nil
}
