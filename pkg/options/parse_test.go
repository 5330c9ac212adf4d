// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

type recordedLine struct {
	Stream Stream
	Level  Level
	Status bool
	Text   string
}

type fakeDisplay struct {
	lines []recordedLine
}

func (d *fakeDisplay) WriteLine(stream Stream, line string) {
	d.lines = append(d.lines, recordedLine{Stream: stream, Text: line})
}

func (d *fakeDisplay) WriteStatusLine(stream Stream, level Level, status, message string) {
	d.lines = append(d.lines, recordedLine{Stream: stream, Level: level, Status: true, Text: status + " " + message})
}

func TestParseOutcomes(t *testing.T) {
	s := fileSchema(t)
	tests := []struct {
		name     string
		args     []string
		wantKind OutcomeKind
		wantCode int
	}{
		{"parsed", []string{"--name", "x", "f"}, Parsed, 0},
		{"long help", []string{"--help"}, HelpRequested, 0},
		{"short help in cluster", []string{"-vh"}, HelpRequested, 0},
		{"help beats errors", []string{"--bogus", "-h"}, HelpRequested, 0},
		{"help after separator is extra", []string{"--name", "x", "f", "--", "--help"}, Parsed, 0},
		{"failure", []string{"--bogus"}, Failed, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(s, tt.args)
			if out.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v (err: %v)", out.Kind, tt.wantKind, out.Err)
			}
			if got := out.ExitCode(); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
			switch out.Kind {
			case Parsed:
				if out.Result == nil {
					t.Error("Result is nil for a parsed outcome")
				}
			case HelpRequested, Failed:
				if out.Text != Render(s) {
					t.Errorf("Text is not the rendered help:\n%s", out.Text)
				}
			}
		})
	}
}

func TestParseFailureCarriesError(t *testing.T) {
	out := Parse(fileSchema(t), []string{"f"})
	var pe *ParseError
	if !errors.As(out.Err, &pe) || pe.Kind != MissingRequired || pe.Name != "name" {
		t.Fatalf("Err = %v, want MissingRequired(name)", out.Err)
	}
}

func TestParseSchemaDeclaresHelp(t *testing.T) {
	s := MustBuild(Declaration{
		Name: "tool",
		Options: []OptionSpec{
			{Name: "host", Short: 'h', Arity: AritySingle},
		},
	})
	out := Parse(s, []string{"-h", "example.com"})
	if out.Kind != Parsed {
		t.Fatalf("Kind = %v, want parsed (err: %v)", out.Kind, out.Err)
	}
	if got := out.Result.String("host"); got != "example.com" {
		t.Errorf("host = %q, want %q", got, "example.com")
	}
	if out := Parse(s, []string{"--help"}); out.Kind != HelpRequested {
		t.Errorf("--help Kind = %v, want help", out.Kind)
	}
}

func TestReportHelp(t *testing.T) {
	s := fileSchema(t)
	d := &fakeDisplay{}
	code := Report(d, Parse(s, []string{"--help"}))
	if code != 0 {
		t.Errorf("Report() = %d, want 0", code)
	}
	var text []string
	for _, l := range d.lines {
		if l.Stream != Stdout || l.Status {
			t.Fatalf("help line %+v not a plain stdout line", l)
		}
		text = append(text, l.Text)
	}
	if diff := cmp.Diff(strings.TrimSuffix(Render(s), "\n"), strings.Join(text, "\n")); diff != "" {
		t.Errorf("help text mismatch (-want +got):\n%s", diff)
	}
}

func TestReportFailure(t *testing.T) {
	s := fileSchema(t)
	d := &fakeDisplay{}
	code := Report(d, Parse(s, []string{"--bogus"}))
	if code != 2 {
		t.Errorf("Report() = %d, want 2", code)
	}
	if len(d.lines) < 3 {
		t.Fatalf("got %d lines, want status, blank and usage", len(d.lines))
	}
	want := recordedLine{Stream: Stderr, Level: LevelError, Status: true, Text: "error: unknown option: --bogus"}
	if diff := cmp.Diff(want, d.lines[0]); diff != "" {
		t.Errorf("status line mismatch (-want +got):\n%s", diff)
	}
	for _, l := range d.lines[1:] {
		if l.Stream != Stderr {
			t.Errorf("usage line %q written to stdout", l.Text)
		}
	}
	if d.lines[2].Text != "iq - Process files" {
		t.Errorf("first usage line = %q", d.lines[2].Text)
	}
}

func TestReportParsedWritesNothing(t *testing.T) {
	d := &fakeDisplay{}
	if code := Report(d, Parse(fileSchema(t), []string{"-n", "x", "f"})); code != 0 {
		t.Errorf("Report() = %d, want 0", code)
	}
	if len(d.lines) != 0 {
		t.Errorf("Report() wrote %d lines for a parsed outcome", len(d.lines))
	}
}

func TestParseConcurrent(t *testing.T) {
	s := fileSchema(t)
	var wg errgroup.Group
	for i := range 16 {
		wg.Go(func() error {
			name := fmt.Sprintf("worker-%d", i)
			out := Parse(s, []string{"--name", name, "-t", name, "f"})
			if out.Kind != Parsed {
				return out.Err
			}
			if got := out.Result.String("name"); got != name {
				return fmt.Errorf("name = %q, want %q", got, name)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		t.Error(err)
	}
}
