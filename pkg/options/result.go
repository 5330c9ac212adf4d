// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"maps"
	"slices"
)

// Has reports whether the option was given on the command line, as
// opposed to filled from its default.
func (r *Result) Has(name string) bool {
	return r.given[name]
}

// Values returns every value bound to the option, in encounter order.
func (r *Result) Values(name string) []any {
	return slices.Clone(r.values[name])
}

// Value returns the option's value. For cumulative options it is the last
// one given.
func (r *Result) Value(name string) (any, bool) {
	vs := r.values[name]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[len(vs)-1], true
}

// String returns the option's value as a string, or "" if unset.
func (r *Result) String(name string) string {
	v, ok := r.Value(name)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value of an integer option, or 0 if unset.
func (r *Result) Int(name string) int64 {
	v, _ := r.Value(name)
	i, _ := v.(int64)
	return i
}

// Bool returns the value of a flag or boolean option, or false if unset.
func (r *Result) Bool(name string) bool {
	v, _ := r.Value(name)
	b, _ := v.(bool)
	return b
}

// Strings returns every value of the option formatted as strings.
func (r *Result) Strings(name string) []string {
	return stringsOf(r.values[name])
}

// Options returns a copy of all option values keyed by long name,
// including defaults.
func (r *Result) Options() map[string][]any {
	out := make(map[string][]any, len(r.values))
	for k, v := range r.values {
		out[k] = slices.Clone(v)
	}
	return out
}

// OptionNames returns the names of all bound options, sorted.
func (r *Result) OptionNames() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Args returns all positional values in order.
func (r *Result) Args() []any {
	return slices.Clone(r.args)
}

// Positional returns the values bound to the named positional.
func (r *Result) Positional(name string) []any {
	return slices.Clone(r.positionals[name])
}

// PositionalStrings is Positional formatted as strings.
func (r *Result) PositionalStrings(name string) []string {
	return stringsOf(r.positionals[name])
}

// Extra returns the raw arguments that followed "--".
func (r *Result) Extra() []string {
	return slices.Clone(r.extra)
}

func stringsOf(vs []any) []string {
	if vs == nil {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
