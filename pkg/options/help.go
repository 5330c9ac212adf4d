// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	helpFlagLong  = "help"
	helpFlagShort = 'h'
	helpText      = "Show this help message"
)

// helpFlags reports which help spellings the facade handles itself, i.e.
// the ones the schema leaves undeclared.
func helpFlags(s *Schema) (long, short bool) {
	_, longTaken := s.byName[helpFlagLong]
	_, shortTaken := s.byShort[helpFlagShort]
	return !longTaken, !shortTaken
}

type helpRow struct {
	left string
	help string
}

// Render formats the schema as help text: a usage line followed by
// required options, optional options and positional arguments. It is
// deterministic.
func Render(s *Schema) string {
	var b strings.Builder

	if s.description != "" {
		b.WriteString(s.name)
		b.WriteString(" - ")
		b.WriteString(s.description)
		b.WriteString("\n\n")
	}
	b.WriteString(RenderUsage(s))
	b.WriteString("\n")

	var required, optional, args []helpRow
	for _, opt := range s.options {
		row := helpRow{left: optionColumn(opt.OptionSpec), help: optionHelp(opt)}
		if opt.Required {
			required = append(required, row)
		} else {
			optional = append(optional, row)
		}
	}
	long, short := helpFlags(s)
	switch {
	case long && short:
		optional = append(optional, helpRow{left: fmt.Sprintf("-%c, --%s", helpFlagShort, helpFlagLong), help: helpText})
	case long:
		optional = append(optional, helpRow{left: "    --" + helpFlagLong, help: helpText})
	case short:
		optional = append(optional, helpRow{left: fmt.Sprintf("-%c", helpFlagShort), help: helpText})
	}
	for _, p := range s.positionals {
		help := p.Help
		if p.Kind == KindChoice {
			help = appendNote(help, "["+strings.Join(p.Choices, "|")+"]")
		}
		args = append(args, helpRow{left: positionalUsage(p), help: help})
	}

	width := 0
	for _, rows := range [][]helpRow{required, optional, args} {
		for _, r := range rows {
			width = max(width, utf8.RuneCountInString(r.left))
		}
	}
	writeSection(&b, "REQUIRED OPTIONS:", required, width)
	writeSection(&b, "OPTIONS:", optional, width)
	writeSection(&b, "ARGUMENTS:", args, width)

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderUsage returns the "USAGE:" section: the program name, required
// options, "[OPTIONS]" when there are optional ones, and positionals.
func RenderUsage(s *Schema) string {
	parts := []string{s.name}
	hasOptional := false
	for _, opt := range s.options {
		if !opt.Required {
			hasOptional = true
			continue
		}
		parts = append(parts, "--"+opt.Name+" "+valuePlaceholder(opt.OptionSpec))
	}
	if long, short := helpFlags(s); long || short {
		hasOptional = true
	}
	if hasOptional {
		parts = slices.Insert(parts, 1, "[OPTIONS]")
	}
	for _, p := range s.positionals {
		parts = append(parts, positionalUsage(p))
	}
	return "USAGE:\n    " + strings.Join(parts, " ") + "\n"
}

func writeSection(b *strings.Builder, title string, rows []helpRow, width int) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, r := range rows {
		if r.help == "" {
			fmt.Fprintf(b, "    %s\n", r.left)
			continue
		}
		fmt.Fprintf(b, "    %-*s  %s\n", width, r.left, r.help)
	}
	b.WriteString("\n")
}

func optionColumn(opt OptionSpec) string {
	var col string
	if opt.Short != 0 {
		col = fmt.Sprintf("-%c, --%s", opt.Short, opt.Name)
	} else {
		col = "    --" + opt.Name
	}
	if opt.Arity.TakesValue() {
		col += " " + valuePlaceholder(opt)
		if opt.Arity == ArityCumulative {
			col += "..."
		}
	}
	return col
}

func optionHelp(opt option) string {
	help := opt.Help
	if opt.Kind == KindChoice && opt.Arity.TakesValue() {
		help = appendNote(help, "["+strings.Join(opt.Choices, "|")+"]")
	}
	if opt.Default != "" {
		help = appendNote(help, fmt.Sprintf("(default: %s)", opt.Default))
	}
	return help
}

func appendNote(help, note string) string {
	if help == "" {
		return note
	}
	return help + " " + note
}

func valuePlaceholder(opt OptionSpec) string {
	name := opt.ValueName
	if name == "" {
		name = opt.Name
	}
	return "<" + strings.ToUpper(name) + ">"
}

func positionalUsage(p PositionalSpec) string {
	name := strings.ToUpper(p.Name)
	if p.Multiplicity.Variadic() {
		name += "..."
	}
	if p.minCount() > 0 {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
