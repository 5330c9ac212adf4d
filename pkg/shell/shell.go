// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell writes plain and Cargo-style status lines to the terminal.
// It owns every color and terminal-capability decision so that callers,
// including the options parser, never have to.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/yeetrun/iqcli/pkg/options"
	"golang.org/x/term"
)

// statusWidth is the column status words are right-justified to.
const statusWidth = 12

// ColorConfig selects when output is colored.
type ColorConfig int

const (
	ColorAuto ColorConfig = iota
	ColorAlways
	ColorNever
)

func (c ColorConfig) String() string {
	switch c {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// ParseColorConfig parses "auto", "always" or "never".
func ParseColorConfig(raw string) (ColorConfig, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (expected auto|always|never)", raw)
	}
}

var isTerminalFn = term.IsTerminal

// Enabled reports whether output to w should be colored under c.
// ColorAuto colors terminals unless NO_COLOR is set or TERM is empty or
// "dumb".
func (c ColorConfig) Enabled(w io.Writer, getenv func(string) string) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return c.EnabledOn(ok && isTerminalFn(int(f.Fd())), getenv)
}

// EnabledOn is Enabled for callers that do their own terminal detection.
func (c ColorConfig) EnabledOn(tty bool, getenv func(string) string) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	if t := getenv("TERM"); t == "" || t == "dumb" {
		return false
	}
	return tty
}

type stream struct {
	w     io.Writer
	color bool
}

// Shell implements options.Display on a pair of output streams. It is safe
// for concurrent use.
type Shell struct {
	mu     sync.Mutex
	stdout stream
	stderr stream
}

type config struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

// Option configures a Shell.
type Option func(*config)

// WithWriters replaces os.Stdout and os.Stderr.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithGetenv replaces os.Getenv for color detection.
func WithGetenv(getenv func(string) string) Option {
	return func(c *config) {
		if getenv != nil {
			c.getenv = getenv
		}
	}
}

// New returns a Shell whose color use is decided once, per stream, from cc.
func New(cc ColorConfig, opts ...Option) *Shell {
	c := config{stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	for _, opt := range opts {
		opt(&c)
	}
	return &Shell{
		stdout: stream{w: c.stdout, color: cc.Enabled(c.stdout, c.getenv)},
		stderr: stream{w: c.stderr, color: cc.Enabled(c.stderr, c.getenv)},
	}
}

var _ options.Display = (*Shell)(nil)

func (s *Shell) streamFor(st options.Stream) stream {
	if st == options.Stderr {
		return s.stderr
	}
	return s.stdout
}

// WriteLine writes line and a newline, uncolored.
func (s *Shell) WriteLine(st options.Stream, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.streamFor(st).w, line)
}

// WriteStatusLine writes a status word and a message. OK and warning
// statuses are bold and right-justified to a fixed column, Cargo style;
// error statuses ("error:") are bold red and written flush left.
func (s *Shell) WriteStatusLine(st options.Stream, level options.Level, status, message string) {
	s.status(st, level, status, message, level != options.LevelError)
}

func (s *Shell) status(st options.Stream, level options.Level, status, message string, justify bool) {
	out := s.streamFor(st)
	c := levelColor(level)
	if out.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	if justify {
		status = fmt.Sprintf("%*s", statusWidth, status)
	}
	line := c.Sprint(status) + " " + message

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(out.w, line)
}

func levelColor(level options.Level) *color.Color {
	switch level {
	case options.LevelWarn:
		return color.New(color.FgYellow, color.Bold)
	case options.LevelError:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgGreen, color.Bold)
}

// StatusOK prints a justified green status line to stdout, e.g.
//
//	      Loaded app loaded successfully
func (s *Shell) StatusOK(status, message string) {
	s.status(options.Stdout, options.LevelOK, status, message, true)
}

// StatusWarn prints a justified yellow status line to stderr.
func (s *Shell) StatusWarn(status, message string) {
	s.status(options.Stderr, options.LevelWarn, status, message, true)
}

// StatusErr prints "error: message" to stderr.
func (s *Shell) StatusErr(message string) {
	s.status(options.Stderr, options.LevelError, "error:", message, false)
}

// StatusAttrOK prints an indented "attr: value" line to stdout.
func (s *Shell) StatusAttrOK(attr, value string) {
	s.status(options.Stdout, options.LevelOK, attr+":", value, true)
}

// StatusAttrErr prints an indented "attr: value" line to stderr in red.
func (s *Shell) StatusAttrErr(attr, value string) {
	s.status(options.Stderr, options.LevelError, attr+":", value, true)
}
