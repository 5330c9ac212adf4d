// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/iqcli/pkg/decl"
	"github.com/yeetrun/iqcli/pkg/logging"
	"github.com/yeetrun/iqcli/pkg/options"
	"github.com/yeetrun/iqcli/pkg/shell"
)

const (
	exitOK      = options.ExitOK
	exitFailure = 1
	exitUsage   = options.ExitUsage
)

const usageText = `iqargs - parse arguments against a grammar file

USAGE:
    iqargs [OPTIONS] -- [ARGS...]

OPTIONS:
        --grammar <FILE>    Grammar declaration, .toml or .yaml (IQARGS_GRAMMAR)
        --format <FORMAT>   Output format [json|yaml|shell] (default: json)
        --color <WHEN>      Colorize messages [auto|always|never] (default: auto)
        --verbose           Log parser decisions to stderr
        --usage             Print the grammar's help text and exit
    -h, --help              Show this help message
`

type globalFlagsParsed struct {
	Grammar string `flag:"grammar" help:"Grammar declaration file (IQARGS_GRAMMAR)"`
	Format  string `flag:"format" help:"Output format (json|yaml|shell)"`
	Color   string `flag:"color" help:"Colorize messages (auto|always|never)"`
	Verbose bool   `flag:"verbose" help:"Log parser decisions to stderr"`
	Usage   bool   `flag:"usage" help:"Print the grammar's help text and exit"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// splitSeparator splits args at the first "--", dropping it.
func splitSeparator(args []string) (before, after []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

// run is main without the process: args includes the program name and the
// return value is the exit code.
func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	flags, remaining, err := parseGlobalFlags(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	cc, err := shell.ParseColorConfig(flags.Color)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	sh := shell.New(cc, shell.WithWriters(stdout, stderr), shell.WithGetenv(getenv))
	logging.Init(stderr, logging.Options{Color: cc, Verbose: flags.Verbose, Getenv: getenv})

	format, err := parseFormat(flags.Format)
	if err != nil {
		sh.StatusErr(err.Error())
		return exitUsage
	}

	own, rest := splitSeparator(remaining)
	for _, arg := range own {
		if arg == "-h" || arg == "--help" {
			return showHelp(sh, stdout, format, usageText)
		}
	}
	if len(own) > 0 {
		sh.StatusErr(fmt.Sprintf("unexpected argument %q (arguments to parse go after --)", own[0]))
		return exitUsage
	}
	path := flags.Grammar
	if path == "" {
		path = getenv("IQARGS_GRAMMAR")
	}
	if path == "" {
		sh.StatusErr("no grammar file given (use --grammar or IQARGS_GRAMMAR)")
		return exitUsage
	}

	schema, err := decl.LoadFile(path)
	if err != nil {
		sh.StatusErr(err.Error())
		return exitFailure
	}
	slog.Debug("grammar loaded", "path", path, "options", len(schema.Options()), "positionals", len(schema.Positionals()))

	if flags.Usage {
		return showHelp(sh, stdout, format, options.Render(schema))
	}

	out := options.Parse(schema, rest)
	switch out.Kind {
	case options.HelpRequested:
		return showHelp(sh, stdout, format, out.Text)
	case options.Failed:
		return options.Report(sh, out)
	}
	if err := writeResult(stdout, format, schema, out.Result); err != nil {
		sh.StatusErr(fmt.Sprintf("writing %s output: %v", format, err))
		return exitFailure
	}
	return exitOK
}

// showHelp prints help text. In shell format stdout is meant for eval, so
// the text goes to stderr and stdout only gets "exit 0", which ends the
// calling script the way printing help ends any other program.
func showHelp(sh *shell.Shell, stdout io.Writer, format outputFormat, text string) int {
	if format != formatShell {
		return options.Report(sh, options.Outcome{Kind: options.HelpRequested, Text: text})
	}
	for line := range strings.Lines(text) {
		sh.WriteLine(options.Stderr, strings.TrimSuffix(line, "\n"))
	}
	if _, err := io.WriteString(stdout, "exit 0\n"); err != nil {
		sh.StatusErr(fmt.Sprintf("writing %s output: %v", format, err))
		return exitFailure
	}
	return exitOK
}

// outputFormat selects how a parsed result is printed.
type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatShell outputFormat = "shell"
)

func parseFormat(raw string) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	case "shell", "sh":
		return formatShell, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected json|yaml|shell)", raw)
	}
}
