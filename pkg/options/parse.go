// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"log/slog"
	"strings"
)

// OutcomeKind says which of Parse's three results an Outcome holds.
type OutcomeKind int

const (
	Parsed OutcomeKind = iota
	HelpRequested
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Parsed:
		return "parsed"
	case HelpRequested:
		return "help"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Conventional exit codes for an Outcome. They are not enforced; Parse
// never exits the process.
const (
	ExitOK    = 0
	ExitUsage = 2
)

// Outcome is the result of Parse.
type Outcome struct {
	Kind OutcomeKind
	// Result is set when Kind is Parsed.
	Result *Result
	// Text is the rendered help for HelpRequested and the rendered usage
	// for Failed.
	Text string
	// Err is the *ParseError for Failed.
	Err error
}

// ExitCode maps the outcome to the conventional process exit code:
// 0 for Parsed and HelpRequested, 2 for Failed.
func (o Outcome) ExitCode() int {
	if o.Kind == Failed {
		return ExitUsage
	}
	return ExitOK
}

// Parse scans and binds args against s. If --help or -h appears before
// "--" and the schema does not declare that option itself, help is
// returned instead of a result.
func Parse(s *Schema, args []string) Outcome {
	tokens := Scan(args, s)
	if wantsHelp(s, tokens) {
		slog.Debug("options: help requested", "program", s.name)
		return Outcome{Kind: HelpRequested, Text: Render(s)}
	}
	res, err := Bind(s, tokens)
	if err != nil {
		attrs := []any{"program", s.name, "err", err}
		if pe, ok := err.(*ParseError); ok && pe.Arg >= 0 {
			attrs = append(attrs, "arg", pe.Arg, "raw", args[pe.Arg])
		}
		slog.Debug("options: parse failed", attrs...)
		return Outcome{Kind: Failed, Err: err, Text: Render(s)}
	}
	slog.Debug("options: parsed", "program", s.name, "options", len(res.values), "args", len(res.args), "extra", len(res.extra))
	return Outcome{Kind: Parsed, Result: res}
}

func wantsHelp(s *Schema, tokens []Token) bool {
	long, short := helpFlags(s)
	for _, tok := range tokens {
		switch tok.Kind {
		case Separator:
			return false
		case LongOption:
			if long && tok.Name == helpFlagLong {
				return true
			}
		case ShortOption:
			if short && tok.Name == string(helpFlagShort) {
				return true
			}
		}
	}
	return false
}

// Stream selects an output stream.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Level is the severity a status line is styled with.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelError
)

// Display is the output surface Report writes to. Color and alignment are
// the implementation's business.
type Display interface {
	WriteLine(stream Stream, line string)
	WriteStatusLine(stream Stream, level Level, status, message string)
}

// Report writes o to d: help goes to stdout, a failure is an error status
// line followed by the usage on stderr. It returns o.ExitCode().
func Report(d Display, o Outcome) int {
	switch o.Kind {
	case HelpRequested:
		writeLines(d, Stdout, o.Text)
	case Failed:
		d.WriteStatusLine(Stderr, LevelError, "error:", o.Err.Error())
		d.WriteLine(Stderr, "")
		writeLines(d, Stderr, o.Text)
	}
	return o.ExitCode()
}

func writeLines(d Display, stream Stream, text string) {
	for line := range strings.Lines(text) {
		d.WriteLine(stream, strings.TrimSuffix(line, "\n"))
	}
}
