// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"strings"
	"unicode"
)

// Arity is the value-cardinality contract of an option.
type Arity int

const (
	// ArityFlag options carry no value and are true when present.
	ArityFlag Arity = iota
	// AritySingle options take one value; the last occurrence wins.
	AritySingle
	// ArityCumulative options take one value per occurrence, kept in order.
	ArityCumulative
)

var arityNames = map[Arity]string{
	ArityFlag:       "flag",
	AritySingle:     "single",
	ArityCumulative: "cumulative",
}

func (a Arity) String() string {
	if s, ok := arityNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Arity(%d)", int(a))
}

// TakesValue reports whether options of this arity consume a value.
func (a Arity) TakesValue() bool {
	return a != ArityFlag
}

func (a Arity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Arity) UnmarshalText(text []byte) error {
	for k, v := range arityNames {
		if strings.EqualFold(v, string(text)) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("invalid arity %q (expected flag|single|cumulative)", text)
}

// Kind is the type a raw option or positional value is converted to.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBoolean
	KindChoice
	KindPath
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInteger: "integer",
	KindBoolean: "boolean",
	KindChoice:  "choice",
	KindPath:    "path",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("invalid kind %q (expected string|integer|boolean|choice|path)", text)
}

// Multiplicity is the number of values a positional accepts.
type Multiplicity int

const (
	ExactlyOne Multiplicity = iota
	ZeroOrOne
	OneOrMore
)

var multiplicityNames = map[Multiplicity]string{
	ExactlyOne: "exactly-one",
	ZeroOrOne:  "zero-or-one",
	OneOrMore:  "one-or-more",
}

func (m Multiplicity) String() string {
	if s, ok := multiplicityNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Multiplicity(%d)", int(m))
}

func (m Multiplicity) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Multiplicity) UnmarshalText(text []byte) error {
	for k, v := range multiplicityNames {
		if strings.EqualFold(v, string(text)) {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("invalid multiplicity %q (expected exactly-one|zero-or-one|one-or-more)", text)
}

// Variadic reports whether the positional may take more than one value.
func (m Multiplicity) Variadic() bool {
	return m == OneOrMore
}

// OptionSpec declares a named option.
type OptionSpec struct {
	Name      string // long name, matched as --name
	Short     rune   // optional alias, matched as -s; 0 for none
	Arity     Arity
	Required  bool
	Default   string // raw default, converted with Kind when the schema is built
	Kind      Kind
	Choices   []string // allowed values for KindChoice
	Help      string
	ValueName string // placeholder shown in help, e.g. FILE
}

// valueKind is the kind values are converted to. Flags are always boolean.
func (o OptionSpec) valueKind() Kind {
	if o.Arity == ArityFlag {
		return KindBoolean
	}
	return o.Kind
}

// PositionalSpec declares a positional argument.
type PositionalSpec struct {
	Name         string
	Required     bool
	Multiplicity Multiplicity
	Kind         Kind
	Choices      []string
	Help         string
}

// minCount is the number of values the positional needs. A OneOrMore
// positional that is not required accepts zero or more values.
func (p PositionalSpec) minCount() int {
	if !p.Required || p.Multiplicity == ZeroOrOne {
		return 0
	}
	return 1
}

// maxCount returns -1 for unbounded.
func (p PositionalSpec) maxCount() int {
	if p.Multiplicity.Variadic() {
		return -1
	}
	return 1
}

// Declaration is the static description a Schema is built from.
type Declaration struct {
	Name        string
	Description string
	Options     []OptionSpec
	Positionals []PositionalSpec
}

// SchemaError reports a malformed Declaration. It is a programming error,
// never a user-facing one.
type SchemaError struct {
	Name   string // option or positional the problem was found on
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Name == "" {
		return "invalid schema: " + e.Reason
	}
	return fmt.Sprintf("invalid schema: %s: %s", e.Name, e.Reason)
}

type option struct {
	OptionSpec
	def any // converted Default, nil when unset
}

// Schema is an immutable, validated grammar. It is safe for concurrent use.
type Schema struct {
	name        string
	description string
	options     []option
	positionals []PositionalSpec
	byName      map[string]int
	byShort     map[rune]int
}

// Build validates decl and returns the resulting Schema.
func Build(decl Declaration) (*Schema, error) {
	s := &Schema{
		name:        decl.Name,
		description: decl.Description,
		options:     make([]option, 0, len(decl.Options)),
		positionals: make([]PositionalSpec, 0, len(decl.Positionals)),
		byName:      make(map[string]int, len(decl.Options)),
		byShort:     make(map[rune]int),
	}

	for _, spec := range decl.Options {
		if err := checkOption(spec); err != nil {
			return nil, err
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, &SchemaError{Name: spec.Name, Reason: "duplicate option name"}
		}
		if spec.Short != 0 {
			if prev, dup := s.byShort[spec.Short]; dup {
				return nil, &SchemaError{
					Name:   spec.Name,
					Reason: fmt.Sprintf("short alias -%c already used by --%s", spec.Short, s.options[prev].Name),
				}
			}
			s.byShort[spec.Short] = len(s.options)
		}
		o := option{OptionSpec: spec}
		o.Choices = append([]string(nil), spec.Choices...)
		if spec.Default != "" {
			v, err := convert(spec.valueKind(), spec.Choices, spec.Default)
			if err != nil {
				return nil, &SchemaError{Name: spec.Name, Reason: fmt.Sprintf("default %q: %v", spec.Default, err)}
			}
			o.def = v
		}
		s.byName[spec.Name] = len(s.options)
		s.options = append(s.options, o)
	}

	seen := make(map[string]bool, len(decl.Positionals))
	var open PositionalSpec // last optional or variadic positional
	hasOpen := false
	for i, spec := range decl.Positionals {
		if spec.Name == "" {
			return nil, &SchemaError{Reason: fmt.Sprintf("positional %d has no name", i)}
		}
		if seen[spec.Name] {
			return nil, &SchemaError{Name: spec.Name, Reason: "duplicate positional name"}
		}
		seen[spec.Name] = true
		if spec.Kind == KindChoice && len(spec.Choices) == 0 {
			return nil, &SchemaError{Name: spec.Name, Reason: "choice kind requires choices"}
		}
		if spec.Required && spec.Multiplicity == ZeroOrOne {
			return nil, &SchemaError{Name: spec.Name, Reason: "zero-or-one positional cannot be required"}
		}
		if hasOpen {
			if open.Multiplicity.Variadic() {
				return nil, &SchemaError{Name: open.Name, Reason: "multi-valued positional must be last"}
			}
			if spec.minCount() > 0 {
				return nil, &SchemaError{
					Name:   spec.Name,
					Reason: fmt.Sprintf("required positional follows optional positional %s", open.Name),
				}
			}
		}
		spec.Choices = append([]string(nil), spec.Choices...)
		s.positionals = append(s.positionals, spec)
		if spec.minCount() == 0 || spec.Multiplicity.Variadic() {
			open, hasOpen = spec, true
		}
	}
	return s, nil
}

func checkOption(spec OptionSpec) error {
	if spec.Name == "" {
		return &SchemaError{Reason: "option has no name"}
	}
	if strings.HasPrefix(spec.Name, "-") || strings.ContainsAny(spec.Name, "= \t") {
		return &SchemaError{Name: spec.Name, Reason: "option name must not start with '-' or contain '=' or spaces"}
	}
	if spec.Short != 0 && (spec.Short == '-' || spec.Short == '=' || unicode.IsSpace(spec.Short)) {
		return &SchemaError{Name: spec.Name, Reason: fmt.Sprintf("invalid short alias %q", spec.Short)}
	}
	if spec.Arity == ArityFlag && spec.Kind != KindBoolean && spec.Kind != KindString {
		return &SchemaError{Name: spec.Name, Reason: fmt.Sprintf("flag cannot have %s kind", spec.Kind)}
	}
	if spec.Kind == KindChoice && len(spec.Choices) == 0 {
		return &SchemaError{Name: spec.Name, Reason: "choice kind requires choices"}
	}
	if spec.Required && spec.Default != "" {
		return &SchemaError{Name: spec.Name, Reason: "required option cannot have a default"}
	}
	if spec.Required && spec.Arity == ArityFlag {
		return &SchemaError{Name: spec.Name, Reason: "flag cannot be required"}
	}
	return nil
}

// MustBuild is like Build but panics on error. It is meant for static
// declarations initialized at startup.
func MustBuild(decl Declaration) *Schema {
	s, err := Build(decl)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the program name used in usage text.
func (s *Schema) Name() string { return s.name }

// Description returns the one-line program description.
func (s *Schema) Description() string { return s.description }

// Options returns a copy of the declared options in declaration order.
func (s *Schema) Options() []OptionSpec {
	out := make([]OptionSpec, len(s.options))
	for i, o := range s.options {
		out[i] = o.OptionSpec
		out[i].Choices = append([]string(nil), o.Choices...)
	}
	return out
}

// Positionals returns a copy of the declared positionals in order.
func (s *Schema) Positionals() []PositionalSpec {
	out := make([]PositionalSpec, len(s.positionals))
	copy(out, s.positionals)
	return out
}

// Lookup returns the option with the given long name.
func (s *Schema) Lookup(name string) (OptionSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return OptionSpec{}, false
	}
	return s.options[i].OptionSpec, true
}

// LookupShort returns the option with the given short alias.
func (s *Schema) LookupShort(c rune) (OptionSpec, bool) {
	i, ok := s.byShort[c]
	if !ok {
		return OptionSpec{}, false
	}
	return s.options[i].OptionSpec, true
}

// ShortTakesValue implements ShortArity.
func (s *Schema) ShortTakesValue(c rune) (takesValue, known bool) {
	i, ok := s.byShort[c]
	if !ok {
		return false, false
	}
	return s.options[i].Arity.TakesValue(), true
}

// Builder accumulates a Declaration.
//
//	s, err := options.NewBuilder("iq").
//		Option(options.OptionSpec{Name: "name", Arity: options.AritySingle, Required: true}).
//		Flag("verbose", 'v', "Enable verbose output").
//		Positional(options.PositionalSpec{Name: "file", Required: true, Multiplicity: options.OneOrMore}).
//		Build()
type Builder struct {
	decl Declaration
}

// NewBuilder returns a Builder for a program called name.
func NewBuilder(name string) *Builder {
	return &Builder{decl: Declaration{Name: name}}
}

// Describe sets the one-line program description.
func (b *Builder) Describe(desc string) *Builder {
	b.decl.Description = desc
	return b
}

// Option appends an option.
func (b *Builder) Option(spec OptionSpec) *Builder {
	b.decl.Options = append(b.decl.Options, spec)
	return b
}

// Flag appends a flag-arity boolean option.
func (b *Builder) Flag(name string, short rune, help string) *Builder {
	return b.Option(OptionSpec{Name: name, Short: short, Arity: ArityFlag, Kind: KindBoolean, Help: help})
}

// Positional appends a positional argument.
func (b *Builder) Positional(spec PositionalSpec) *Builder {
	b.decl.Positionals = append(b.decl.Positionals, spec)
	return b
}

// Declaration returns a copy of the accumulated declaration.
func (b *Builder) Declaration() Declaration {
	d := b.decl
	d.Options = append([]OptionSpec(nil), b.decl.Options...)
	d.Positionals = append([]PositionalSpec(nil), b.decl.Positionals...)
	return d
}

// Build validates the accumulated declaration.
func (b *Builder) Build() (*Schema, error) {
	return Build(b.Declaration())
}
