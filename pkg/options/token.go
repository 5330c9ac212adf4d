// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenKind classifies a Token.
type TokenKind int

const (
	LongOption TokenKind = iota
	ShortOption
	PlainValue
	Separator
)

func (k TokenKind) String() string {
	switch k {
	case LongOption:
		return "long"
	case ShortOption:
		return "short"
	case PlainValue:
		return "value"
	case Separator:
		return "separator"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one syntactically classified argument, or one option out of a
// short-option cluster.
type Token struct {
	Kind     TokenKind
	Name     string // long option name, or the short option character
	Value    string // inline value for options, text for PlainValue
	HasValue bool   // Value was given inline (--name=value, -cvalue)
	Arg      int    // index of the raw argument the token came from
}

func (t Token) String() string {
	switch t.Kind {
	case LongOption:
		if t.HasValue {
			return fmt.Sprintf("--%s=%s", t.Name, t.Value)
		}
		return "--" + t.Name
	case ShortOption:
		if t.HasValue {
			return fmt.Sprintf("-%s=%s", t.Name, t.Value)
		}
		return "-" + t.Name
	case Separator:
		return "--"
	}
	return t.Value
}

// ShortArity tells the tokenizer which short options take a value, which
// is where a short-option cluster such as -abcval ends. This is the only
// schema knowledge the tokenizer uses. *Schema implements it.
type ShortArity interface {
	ShortTakesValue(c rune) (takesValue, known bool)
}

// Scan splits args into tokens.
//
//   - "--" is a Separator and everything after it is a PlainValue.
//   - "--name=value" and "--name" are LongOption tokens.
//   - "-abc" is a cluster of ShortOption tokens. A character that takes a
//     value ends the cluster and the rest of the argument is its value;
//     "-c=val" is the same as "-cval". Unknown characters are emitted as
//     value-less options.
//   - "-" and negative numbers whose first digit is not a short alias are
//     PlainValue, as is everything else.
//
// shorts may be nil, in which case every short option is treated as a flag.
func Scan(args []string, shorts ShortArity) []Token {
	tokens := make([]Token, 0, len(args))
	for i, arg := range args {
		switch {
		case arg == "--":
			tokens = append(tokens, Token{Kind: Separator, Arg: i})
			for j := i + 1; j < len(args); j++ {
				tokens = append(tokens, Token{Kind: PlainValue, Value: args[j], Arg: j})
			}
			return tokens

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			tokens = append(tokens, Token{Kind: LongOption, Name: name, Value: value, HasValue: hasValue, Arg: i})

		case len(arg) > 1 && arg[0] == '-' && !negativeNumber(arg, shorts):
			tokens = scanCluster(tokens, arg[1:], i, shorts)

		default:
			tokens = append(tokens, Token{Kind: PlainValue, Value: arg, Arg: i})
		}
	}
	return tokens
}

func scanCluster(tokens []Token, cluster string, arg int, shorts ShortArity) []Token {
	for cluster != "" {
		c, size := utf8.DecodeRuneInString(cluster)
		cluster = cluster[size:]
		tok := Token{Kind: ShortOption, Name: string(c), Arg: arg}

		if strings.HasPrefix(cluster, "=") {
			tok.Value, tok.HasValue = cluster[1:], true
			return append(tokens, tok)
		}
		if takesValue(shorts, c) && cluster != "" {
			tok.Value, tok.HasValue = cluster, true
			return append(tokens, tok)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func takesValue(shorts ShortArity, c rune) bool {
	if shorts == nil {
		return false
	}
	v, _ := shorts.ShortTakesValue(c)
	return v
}

// negativeNumber reports whether arg is a negative integer or decimal,
// such as -5 or -2.5, to be read as a value rather than a cluster of digit
// short options. A declared alias for the first character keeps the
// cluster reading.
func negativeNumber(arg string, shorts ShortArity) bool {
	number, ok := strings.CutPrefix(arg, "-")
	if !ok {
		return false
	}
	whole, frac, _ := strings.Cut(number, ".")
	if whole+frac == "" || !allDigits(whole) || !allDigits(frac) {
		return false
	}
	if shorts == nil {
		return true
	}
	_, known := shorts.ShortTakesValue(rune(number[0]))
	return !known
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
