// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yeetrun/iqcli/pkg/options"
	"gopkg.in/yaml.v3"
)

// document is the printed form of a parse result. Single-valued options
// and positionals are scalars; cumulative options and variadic
// positionals are lists. Options without a value are omitted.
type document struct {
	Options     map[string]any `json:"options" yaml:"options"`
	Positionals map[string]any `json:"positionals" yaml:"positionals"`
	Extra       []string       `json:"extra" yaml:"extra"`
}

type assignment struct {
	name       string
	values     []any
	list       bool
	positional bool
}

// assignments lists every declared option then every positional, in
// schema order. values is empty for the ones that got no value.
func assignments(s *options.Schema, r *options.Result) []assignment {
	var out []assignment
	for _, spec := range s.Options() {
		out = append(out, assignment{name: spec.Name, values: r.Values(spec.Name), list: spec.Arity == options.ArityCumulative})
	}
	for _, p := range s.Positionals() {
		out = append(out, assignment{name: p.Name, values: r.Positional(p.Name), list: p.Multiplicity.Variadic(), positional: true})
	}
	return out
}

func (a assignment) value() any {
	if a.list {
		return a.values
	}
	return a.values[len(a.values)-1]
}

func newDocument(s *options.Schema, r *options.Result) document {
	doc := document{
		Options:     map[string]any{},
		Positionals: map[string]any{},
		Extra:       r.Extra(),
	}
	if doc.Extra == nil {
		doc.Extra = []string{}
	}
	for _, a := range assignments(s, r) {
		if len(a.values) == 0 {
			continue
		}
		if a.positional {
			doc.Positionals[a.name] = a.value()
		} else {
			doc.Options[a.name] = a.value()
		}
	}
	return doc
}

func writeResult(w io.Writer, format outputFormat, s *options.Schema, r *options.Result) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(s, r)); err != nil {
			return err
		}
		return enc.Close()
	case formatShell:
		return writeShell(w, s, r)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(s, r))
	}
}

// writeShell prints one POSIX-quoted assignment per line, suitable for
// eval. Every declared name is assigned so nothing from the caller's
// environment survives: lists become bash arrays, empty ones included,
// and scalars without a value are unset. Arguments after "--" are EXTRA.
func writeShell(w io.Writer, s *options.Schema, r *options.Result) error {
	var b strings.Builder
	for _, a := range assignments(s, r) {
		name := shellName(a.name)
		switch {
		case a.list:
			writeArray(&b, name, a.values)
		case len(a.values) == 0:
			fmt.Fprintf(&b, "unset %s\n", name)
		default:
			fmt.Fprintf(&b, "%s=%s\n", name, shellQuote(fmt.Sprint(a.value())))
		}
	}
	extra := r.Extra()
	vs := make([]any, len(extra))
	for i, e := range extra {
		vs[i] = e
	}
	writeArray(&b, "EXTRA", vs)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeArray(b *strings.Builder, name string, values []any) {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = shellQuote(fmt.Sprint(v))
	}
	fmt.Fprintf(b, "%s=(%s)\n", name, strings.Join(quoted, " "))
}

// shellName upper-cases name and replaces anything that is not a letter,
// digit or underscore.
func shellName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
