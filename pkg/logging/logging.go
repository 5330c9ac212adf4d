// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/yeetrun/iqcli/pkg/shell"
)

// Options controls the handler built by NewHandler.
type Options struct {
	Color   shell.ColorConfig
	Verbose bool
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Level returns the minimum level logged for the given verbosity.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func colorEnabled(w io.Writer, opts Options) bool {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return opts.Color.EnabledOn(isTerminal(w), getenv)
}

// NewHandler returns a tint handler writing to w.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      Level(opts.Verbose),
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(w, opts),
	})
}

// Init installs a handler on w as the slog default and returns the logger.
func Init(w io.Writer, opts Options) *slog.Logger {
	l := slog.New(NewHandler(w, opts))
	slog.SetDefault(l)
	return l
}
