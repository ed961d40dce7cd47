package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"
)

var cfg struct {
	verbose bool
}

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(consoleOutput)
)

func main() {
	ctx := withOutput(context.Background(), os.Stdout)

	app := kingpin.New(filepath.Base(os.Args[0]), "Generates the kernel's embedded symbol table from a compiled image.").UsageWriter(os.Stdout)
	app.Version(version.Print("ksymgen"))
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').Default("0").BoolVar(&cfg.verbose)

	generateCmd := app.Command("generate", "Generate the symbol table artifact.").Default()
	generateParams := addGenerateParams(generateCmd)

	inspectCmd := app.Command("inspect", "Print the table that generate would embed.")
	inspectParams := addInspectParams(inspectCmd)

	resolveCmd := app.Command("resolve", "Resolve addresses against the kernel's symbols.")
	resolveParams := addResolveParams(resolveCmd)

	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if !cfg.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	switch parsedCmd {
	case generateCmd.FullCommand():
		if err := generate(ctx, generateParams); err != nil {
			os.Exit(checkError(err))
		}
	case inspectCmd.FullCommand():
		if err := inspect(ctx, inspectParams); err != nil {
			os.Exit(checkError(err))
		}
	case resolveCmd.FullCommand():
		if err := resolve(ctx, resolveParams); err != nil {
			os.Exit(checkError(err))
		}
	default:
		level.Error(logger).Log("msg", "unknown command", "cmd", parsedCmd)
	}
}

func checkError(err error) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type contextKey uint8

const (
	contextKeyOutput contextKey = iota
)

func withOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, contextKeyOutput, w)
}

func output(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(contextKeyOutput).(io.Writer); ok {
		return w
	}
	return os.Stdout
}
