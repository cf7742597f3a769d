package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"

	"github.com/weldlang/weld/internal/evaluator"
	"github.com/weldlang/weld/internal/importer"
	"github.com/weldlang/weld/internal/lexer"
	"github.com/weldlang/weld/internal/parser"
	"github.com/weldlang/weld/internal/pipeline"
	"github.com/weldlang/weld/internal/serializer"
	"github.com/weldlang/weld/internal/token"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const usage = `Usage:
  weld eval [flags] FILE
  weld export [flags] FILE

Commands:
  eval      evaluate FILE and print the resulting value
  export    evaluate FILE and serialize the result

Flags (export):
  --format FORMAT   json, yaml or toml (default json)
  --output FILE     write to FILE instead of stdout

Flags (all commands):
  --log-file FILE   append JSON debug logs to FILE
  --no-color        disable colored error output
`

type options struct {
	logFile string
	noColor bool
	format  string
	output  string
}

// Entry is the CLI entry point; it returns the process exit code.
func Entry(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return ExitUsage
	}

	command := args[0]
	switch command {
	case "eval", "export":
	case "help", "-h", "--help", "-help":
		fmt.Print(usage)
		return ExitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		return ExitUsage
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts options
	fs.StringVar(&opts.logFile, "log-file", "", "append JSON debug logs to FILE")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored error output")
	if command == "export" {
		fs.StringVar(&opts.format, "format", "json", "export format: json, yaml or toml")
		fs.StringVar(&opts.output, "output", "", "write to FILE instead of stdout")
	}
	if err := fs.Parse(args[1:]); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		return ExitUsage
	}
	path := fs.Arg(0)

	logger, closeLog, err := buildLogger(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}
	defer closeLog()

	ev, result, ok := evalFile(path, logger, opts)
	if !ok {
		return ExitError
	}

	switch command {
	case "eval":
		forced := ev.DeepForce(result, token.Token{})
		if err, isErr := forced.(*evaluator.Error); isErr {
			printError(err.Inspect(), opts)
			return ExitError
		}
		fmt.Println(forced.Inspect())
		return ExitOK

	case "export":
		format, err := serializer.ParseFormat(opts.format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return ExitUsage
		}
		data, err := serializer.Serialize(ev, result, format)
		if err != nil {
			printError(err.Error(), opts)
			return ExitError
		}
		if opts.output != "" {
			if err := os.WriteFile(opts.output, data, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		os.Stdout.Write(data)
		return ExitOK
	}
	return ExitUsage
}

// evalFile runs the lex/parse/eval pipeline on one source file.
func evalFile(path string, logger *slog.Logger, opts options) (*evaluator.Evaluator, evaluator.Object, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, nil, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = abs
	p := parser.New(lexer.New(string(source)), ctx)
	root := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		for _, diag := range ctx.Errors {
			printError(diag.Error(), opts)
		}
		return nil, nil, false
	}

	ev := evaluator.New()
	ev.CurrentFile = abs
	ev.Logger = logger
	ev.Imports = importer.New(logger).Resolve

	result := ev.Eval(root, evaluator.NewBaseEnvironment())
	if err, isErr := result.(*evaluator.Error); isErr {
		printError(err.Inspect(), opts)
		return nil, nil, false
	}
	return ev, result, true
}

// buildLogger fans debug logs out to an optional JSON log file; the
// console only sees warnings.
func buildLogger(logFile string) (*slog.Logger, func(), error) {
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	closeLog := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers,
			slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeLog = func() { f.Close() }
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeLog, nil
}

func printError(msg string, opts options) {
	if useColor(os.Stderr, opts) {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func useColor(w io.Writer, opts options) bool {
	if opts.noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
