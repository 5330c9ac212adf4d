// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/yeetrun/iqcli/pkg/options"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func newTestShell(cc ColorConfig) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return New(cc, WithWriters(&stdout, &stderr), WithGetenv(env(map[string]string{"TERM": "xterm"}))), &stdout, &stderr
}

func TestStatusOKJustified(t *testing.T) {
	sh, stdout, stderr := newTestShell(ColorNever)
	sh.StatusOK("Loaded", "app loaded successfully")
	want := "      Loaded app loaded successfully\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestStatusErrFlushLeft(t *testing.T) {
	sh, stdout, stderr := newTestShell(ColorNever)
	sh.StatusErr("something bad happened")
	if got, want := stderr.String(), "error: something bad happened\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestStatusAttr(t *testing.T) {
	sh, stdout, stderr := newTestShell(ColorNever)
	sh.StatusAttrOK("good", "yep")
	sh.StatusAttrErr("error", "nope")
	if got, want := stdout.String(), "       good: yep\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := stderr.String(), "      error: nope\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestWriteLineStreams(t *testing.T) {
	sh, stdout, stderr := newTestShell(ColorAlways)
	sh.WriteLine(options.Stdout, "out")
	sh.WriteLine(options.Stderr, "err")
	if got := stdout.String(); got != "out\n" {
		t.Errorf("stdout = %q, want %q", got, "out\n")
	}
	if got := stderr.String(); got != "err\n" {
		t.Errorf("stderr = %q, want %q", got, "err\n")
	}
}

func TestColorAlways(t *testing.T) {
	sh, stdout, _ := newTestShell(ColorAlways)
	sh.StatusOK("Built", "ok")
	got := stdout.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("stdout = %q, want ANSI color codes", got)
	}
	if !strings.Contains(got, "Built") || !strings.HasSuffix(got, " ok\n") {
		t.Errorf("stdout = %q, want status and message", got)
	}
}

func TestColorEnabled(t *testing.T) {
	orig := isTerminalFn
	defer func() { isTerminalFn = orig }()
	isTerminalFn = func(int) bool { return true }

	tests := []struct {
		name string
		cc   ColorConfig
		w    io.Writer
		env  map[string]string
		want bool
	}{
		{"always ignores env", ColorAlways, &bytes.Buffer{}, map[string]string{"NO_COLOR": "1"}, true},
		{"never", ColorNever, os.Stdout, map[string]string{"TERM": "xterm"}, false},
		{"auto on terminal", ColorAuto, os.Stdout, map[string]string{"TERM": "xterm"}, true},
		{"auto with NO_COLOR", ColorAuto, os.Stdout, map[string]string{"TERM": "xterm", "NO_COLOR": "1"}, false},
		{"auto with dumb terminal", ColorAuto, os.Stdout, map[string]string{"TERM": "dumb"}, false},
		{"auto without TERM", ColorAuto, os.Stdout, nil, false},
		{"auto on buffer", ColorAuto, &bytes.Buffer{}, map[string]string{"TERM": "xterm"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cc.Enabled(tt.w, env(tt.env)); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColorConfig(t *testing.T) {
	for raw, want := range map[string]ColorConfig{"": ColorAuto, "Auto": ColorAuto, "always": ColorAlways, " never ": ColorNever} {
		got, err := ParseColorConfig(raw)
		if err != nil || got != want {
			t.Errorf("ParseColorConfig(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseColorConfig("sometimes"); err == nil {
		t.Error("ParseColorConfig(sometimes) succeeded, want error")
	}
}

func TestReportThroughShell(t *testing.T) {
	sh, stdout, stderr := newTestShell(ColorNever)
	s := options.MustBuild(options.Declaration{Name: "tool"})
	code := options.Report(sh, options.Parse(s, []string{"--bogus"}))
	if code != options.ExitUsage {
		t.Errorf("Report() = %d, want %d", code, options.ExitUsage)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "error: unknown option: --bogus\n\nUSAGE:\n    tool [OPTIONS]\n") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
