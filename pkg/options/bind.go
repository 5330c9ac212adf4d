// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	UnknownOption ErrorKind = iota + 1
	MissingValue
	InvalidValue
	MissingRequired
	TooFewPositionals
	TooManyPositionals
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownOption:
		return "unknown option"
	case MissingValue:
		return "missing value"
	case InvalidValue:
		return "invalid value"
	case MissingRequired:
		return "missing required option"
	case TooFewPositionals:
		return "too few arguments"
	case TooManyPositionals:
		return "too many arguments"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is returned when user-supplied arguments do not match the
// schema. It is always the first problem found, scanning left to right.
type ParseError struct {
	Kind ErrorKind
	// Name is the long option name (without dashes) or positional name.
	// For UnknownOption it is the name as typed.
	Name string
	// Flag is the option as the user spelled it, e.g. "-c" or "--count".
	// Empty for positional errors and MissingRequired.
	Flag string
	// Value is the raw text for InvalidValue and TooManyPositionals.
	Value string
	// Expected describes the wanted kind for InvalidValue.
	Expected string
	// Arg is the index of the offending argument, or -1 when the problem
	// is only known after every argument was read (MissingRequired,
	// TooFewPositionals).
	Arg int
	// Err is the underlying conversion error, if any.
	Err error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownOption:
		return fmt.Sprintf("unknown option: %s", e.Flag)
	case MissingValue:
		return fmt.Sprintf("option %s requires a value", e.Flag)
	case InvalidValue:
		if e.Flag == "" {
			return fmt.Sprintf("invalid value %q for %s: expected %s", e.Value, strings.ToUpper(e.Name), e.Expected)
		}
		return fmt.Sprintf("invalid value %q for %s: expected %s", e.Value, e.Flag, e.Expected)
	case MissingRequired:
		return fmt.Sprintf("missing required option --%s", e.Name)
	case TooFewPositionals:
		return fmt.Sprintf("missing required argument %s", strings.ToUpper(e.Name))
	case TooManyPositionals:
		return fmt.Sprintf("unexpected argument %q", e.Value)
	}
	return e.Kind.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result holds the typed values bound from one argument list. Values are
// string (string, choice and path kinds), int64 (integer) or bool (boolean
// and flags).
type Result struct {
	values      map[string][]any
	given       map[string]bool
	args        []any
	positionals map[string][]any
	extra       []string
}

func newResult() *Result {
	return &Result{
		values:      make(map[string][]any),
		given:       make(map[string]bool),
		positionals: make(map[string][]any),
	}
}

// Bind matches tokens against s and converts every value. It stops at the
// first error.
func Bind(s *Schema, tokens []Token) (*Result, error) {
	b := &binder{schema: s, res: newResult()}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case Separator:
			for _, t := range tokens[i+1:] {
				b.res.extra = append(b.res.extra, t.Value)
			}
			i = len(tokens)

		case LongOption, ShortOption:
			opt, flag, err := b.resolve(tok)
			if err != nil {
				return nil, err
			}
			raw, ok := tok.Value, tok.HasValue
			if opt.Arity.TakesValue() && !ok {
				if i+1 >= len(tokens) || tokens[i+1].Kind != PlainValue {
					return nil, &ParseError{Kind: MissingValue, Name: opt.Name, Flag: flag, Arg: tok.Arg}
				}
				i++
				raw, ok = tokens[i].Value, true
			}
			if err := b.store(opt, flag, raw, ok, tokens[i].Arg); err != nil {
				return nil, err
			}

		case PlainValue:
			if err := b.positional(tok); err != nil {
				return nil, err
			}
		}
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b.res, nil
}

type binder struct {
	schema *Schema
	res    *Result
	pos    int // index of the positional currently being filled
	filled int // values given to positionals[pos]
}

func (b *binder) resolve(tok Token) (*option, string, error) {
	if tok.Kind == LongOption {
		flag := "--" + tok.Name
		i, ok := b.schema.byName[tok.Name]
		if !ok {
			return nil, "", &ParseError{Kind: UnknownOption, Name: tok.Name, Flag: flag, Arg: tok.Arg}
		}
		return &b.schema.options[i], flag, nil
	}
	flag := "-" + tok.Name
	c := []rune(tok.Name)[0]
	i, ok := b.schema.byShort[c]
	if !ok {
		return nil, "", &ParseError{Kind: UnknownOption, Name: tok.Name, Flag: flag, Arg: tok.Arg}
	}
	return &b.schema.options[i], flag, nil
}

// store binds one occurrence of opt. arg is the index of the argument raw
// came from.
func (b *binder) store(opt *option, flag, raw string, hasRaw bool, arg int) error {
	var v any = true
	if hasRaw {
		kind := opt.valueKind()
		converted, err := convert(kind, opt.Choices, raw)
		if err != nil {
			return &ParseError{
				Kind:     InvalidValue,
				Name:     opt.Name,
				Flag:     flag,
				Value:    raw,
				Expected: expected(kind, opt.Choices),
				Arg:      arg,
				Err:      err,
			}
		}
		v = converted
	}
	if opt.Arity == ArityCumulative {
		b.res.values[opt.Name] = append(b.res.values[opt.Name], v)
	} else {
		b.res.values[opt.Name] = []any{v}
	}
	b.res.given[opt.Name] = true
	return nil
}

func (b *binder) positional(tok Token) error {
	raw := tok.Value
	for b.pos < len(b.schema.positionals) {
		p := b.schema.positionals[b.pos]
		if limit := p.maxCount(); limit >= 0 && b.filled >= limit {
			b.pos++
			b.filled = 0
			continue
		}
		v, err := convert(p.Kind, p.Choices, raw)
		if err != nil {
			return &ParseError{
				Kind:     InvalidValue,
				Name:     p.Name,
				Value:    raw,
				Expected: expected(p.Kind, p.Choices),
				Arg:      tok.Arg,
				Err:      err,
			}
		}
		b.res.args = append(b.res.args, v)
		b.res.positionals[p.Name] = append(b.res.positionals[p.Name], v)
		b.filled++
		return nil
	}
	return &ParseError{Kind: TooManyPositionals, Value: raw, Arg: tok.Arg}
}

func (b *binder) finish() error {
	for _, opt := range b.schema.options {
		if opt.Required && !b.res.given[opt.Name] {
			return &ParseError{Kind: MissingRequired, Name: opt.Name, Arg: -1}
		}
	}
	for _, p := range b.schema.positionals {
		if len(b.res.positionals[p.Name]) < p.minCount() {
			return &ParseError{Kind: TooFewPositionals, Name: p.Name, Arg: -1}
		}
	}
	for _, opt := range b.schema.options {
		if b.res.given[opt.Name] {
			continue
		}
		switch {
		case opt.def != nil:
			b.res.values[opt.Name] = []any{opt.def}
		case opt.Arity == ArityFlag:
			b.res.values[opt.Name] = []any{false}
		}
	}
	return nil
}
