// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package options parses command-line arguments against a grammar declared
// by the caller.
//
// A grammar is declared once, validated into an immutable Schema, and then
// used for any number of Parse calls, concurrently if need be:
//
//	var schema = options.MustBuild(options.Declaration{
//	    Name: "iq",
//	    Options: []options.OptionSpec{
//	        {Name: "name", Arity: options.AritySingle, Required: true, Help: "Name to use"},
//	        {Name: "verbose", Short: 'v', Arity: options.ArityFlag, Help: "Enable verbose output"},
//	    },
//	    Positionals: []options.PositionalSpec{
//	        {Name: "file", Required: true, Multiplicity: options.OneOrMore},
//	    },
//	})
//
//	out := options.Parse(schema, os.Args[1:])
//	if out.Kind != options.Parsed {
//	    os.Exit(options.Report(display, out))
//	}
//	name := out.Result.String("name")
//
// # Syntax
//
//   - Long options: --verbose, --name=value, --name value
//   - Short options: -v, -n value, -nvalue, -n=value
//   - Short clusters: -abc is -a -b -c; a value-taking option ends the
//     cluster and takes the rest of the argument, so -abcval is -a -b -c=val
//   - "--" ends option parsing; everything after it is returned by
//     Result.Extra verbatim
//   - A lone "-" and negative numbers are plain values
//
// # Arity
//
// Flags carry no value and are true when present. Single options keep
// the last value given. Cumulative options keep every value in order.
//
// # Errors
//
// Build reports a malformed declaration as a *SchemaError. Parse reports
// the first argument problem, left to right, as a *ParseError together with
// the rendered help text; it never terminates the process. Use
// Outcome.ExitCode for the conventional exit status.
package options
