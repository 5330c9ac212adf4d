// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	want := `iq - Process files

USAGE:
    iq [OPTIONS] --name <NAME> <FILE...>

REQUIRED OPTIONS:
    -n, --name <NAME>    Name to use

OPTIONS:
    -v, --verbose        Enable verbose output
        --count <COUNT>  Number of passes (default: 3)
    -t, --tag <TAG>...   Tag to apply
        --mode <MODE>    Processing mode [fast|slow]
    -h, --help           Show this help message

ARGUMENTS:
    <FILE...>            Files to process
`
	got := Render(fileSchema(t))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIdempotent(t *testing.T) {
	s := fileSchema(t)
	first := Render(s)
	second := Render(s)
	if first != second {
		t.Errorf("Render() not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRenderUsage(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
		want string
	}{
		{
			name: "positional forms",
			decl: Declaration{
				Name: "cp",
				Positionals: []PositionalSpec{
					{Name: "src", Required: true},
					{Name: "dst", Multiplicity: ZeroOrOne},
					{Name: "more", Multiplicity: OneOrMore},
				},
			},
			want: "USAGE:\n    cp [OPTIONS] <SRC> [DST] [MORE...]\n",
		},
		{
			name: "value name placeholder",
			decl: Declaration{
				Name: "run",
				Options: []OptionSpec{
					{Name: "config", Arity: AritySingle, Required: true, ValueName: "file"},
				},
			},
			want: "USAGE:\n    run [OPTIONS] --config <FILE>\n",
		},
		{
			name: "schema owns help",
			decl: Declaration{
				Name: "tool",
				Options: []OptionSpec{
					{Name: "help", Short: 'h', Arity: ArityFlag},
				},
			},
			want: "USAGE:\n    tool [OPTIONS]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderUsage(MustBuild(tt.decl))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderUsage() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderDeclaredHelpNotDuplicated(t *testing.T) {
	s := MustBuild(Declaration{
		Name: "tool",
		Options: []OptionSpec{
			{Name: "host", Short: 'h', Arity: AritySingle, Help: "Host to dial"},
		},
	})
	got := Render(s)
	if strings.Contains(got, "-h, --help") {
		t.Errorf("Render() offers -h for help although -h is --host:\n%s", got)
	}
	if !strings.Contains(got, "    --help") {
		t.Errorf("Render() missing --help:\n%s", got)
	}
}
