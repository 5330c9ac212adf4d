// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decl loads option grammars from TOML or YAML documents.
//
// A grammar document looks like:
//
//	name = "iq"
//	description = "Process files"
//
//	[[options]]
//	name = "count"
//	arity = "single"
//	kind = "integer"
//	default = 3
//
//	[[positionals]]
//	name = "file"
//	required = true
//	multiplicity = "one-or-more"
//
// The YAML form uses the same keys.
package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/iqcli/pkg/options"
	"gopkg.in/yaml.v3"
)

// Format is a grammar document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

type grammarFile struct {
	Name        string            `toml:"name" yaml:"name"`
	Description string            `toml:"description,omitempty" yaml:"description,omitempty"`
	Options     []optionEntry     `toml:"options,omitempty" yaml:"options,omitempty"`
	Positionals []positionalEntry `toml:"positionals,omitempty" yaml:"positionals,omitempty"`
}

type optionEntry struct {
	Name      string   `toml:"name" yaml:"name"`
	Short     string   `toml:"short,omitempty" yaml:"short,omitempty"`
	Arity     string   `toml:"arity,omitempty" yaml:"arity,omitempty"`
	Required  bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Default   any      `toml:"default,omitempty" yaml:"default,omitempty"`
	Kind      string   `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Choices   []string `toml:"choices,omitempty" yaml:"choices,omitempty"`
	Help      string   `toml:"help,omitempty" yaml:"help,omitempty"`
	ValueName string   `toml:"value_name,omitempty" yaml:"value_name,omitempty"`
}

type positionalEntry struct {
	Name         string   `toml:"name" yaml:"name"`
	Required     bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Multiplicity string   `toml:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Kind         string   `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Choices      []string `toml:"choices,omitempty" yaml:"choices,omitempty"`
	Help         string   `toml:"help,omitempty" yaml:"help,omitempty"`
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported grammar file %q (expected .toml, .yaml or .yml)", path)
	}
}

// LoadFile reads and builds the grammar at path.
func LoadFile(path string) (*options.Schema, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return options.Build(d)
}

// Parse decodes a grammar document. It does not validate the grammar
// beyond its encoding; options.Build does that.
func Parse(format Format, data []byte) (options.Declaration, error) {
	var g grammarFile
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &g)
		if err != nil {
			return options.Declaration{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return options.Declaration{}, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&g); err != nil && !errors.Is(err, io.EOF) {
			return options.Declaration{}, err
		}
	default:
		return options.Declaration{}, fmt.Errorf("unsupported grammar format %q", format)
	}
	return g.declaration()
}

// ParseTOML decodes a TOML grammar document.
func ParseTOML(data []byte) (options.Declaration, error) {
	return Parse(FormatTOML, data)
}

// ParseYAML decodes a YAML grammar document.
func ParseYAML(data []byte) (options.Declaration, error) {
	return Parse(FormatYAML, data)
}

func (g grammarFile) declaration() (options.Declaration, error) {
	d := options.Declaration{Name: g.Name, Description: g.Description}
	for _, e := range g.Options {
		spec, err := e.spec()
		if err != nil {
			return options.Declaration{}, fmt.Errorf("option %q: %w", e.Name, err)
		}
		d.Options = append(d.Options, spec)
	}
	for _, e := range g.Positionals {
		spec, err := e.spec()
		if err != nil {
			return options.Declaration{}, fmt.Errorf("positional %q: %w", e.Name, err)
		}
		d.Positionals = append(d.Positionals, spec)
	}
	return d, nil
}

func (e optionEntry) spec() (options.OptionSpec, error) {
	spec := options.OptionSpec{
		Name:      e.Name,
		Required:  e.Required,
		Choices:   e.Choices,
		Help:      e.Help,
		ValueName: e.ValueName,
	}
	if e.Short != "" {
		r, size := utf8.DecodeRuneInString(e.Short)
		if size != len(e.Short) || r == utf8.RuneError {
			return spec, fmt.Errorf("short alias %q must be a single character", e.Short)
		}
		spec.Short = r
	}
	// Arity defaults to single; flags are declared with arity = "flag".
	spec.Arity = options.AritySingle
	if e.Arity != "" {
		if err := spec.Arity.UnmarshalText([]byte(e.Arity)); err != nil {
			return spec, err
		}
	}
	if err := unmarshalKind(&spec.Kind, e.Kind); err != nil {
		return spec, err
	}
	if e.Default != nil {
		spec.Default = fmt.Sprint(e.Default)
	}
	return spec, nil
}

func (e positionalEntry) spec() (options.PositionalSpec, error) {
	spec := options.PositionalSpec{
		Name:     e.Name,
		Required: e.Required,
		Choices:  e.Choices,
		Help:     e.Help,
	}
	if e.Multiplicity != "" {
		if err := spec.Multiplicity.UnmarshalText([]byte(e.Multiplicity)); err != nil {
			return spec, err
		}
	}
	if err := unmarshalKind(&spec.Kind, e.Kind); err != nil {
		return spec, err
	}
	return spec, nil
}

func unmarshalKind(k *options.Kind, raw string) error {
	if raw == "" {
		return nil
	}
	return k.UnmarshalText([]byte(raw))
}
