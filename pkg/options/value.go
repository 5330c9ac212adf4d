// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// convert turns a raw argument into the Go value for kind:
// string for KindString, KindChoice and KindPath, int64 for KindInteger and
// bool for KindBoolean.
func convert(kind Kind, choices []string, value string) (any, error) {
	switch kind {
	case KindString:
		return value, nil

	case KindInteger:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int value %q: %w", value, err)
		}
		return i, nil

	case KindBoolean:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool value %q: %w", value, err)
		}
		return b, nil

	case KindChoice:
		if !slices.Contains(choices, value) {
			return nil, fmt.Errorf("invalid value %q (expected %s)", value, strings.Join(choices, "|"))
		}
		return value, nil

	case KindPath:
		if value == "" {
			return nil, errors.New("empty path")
		}
		if strings.ContainsRune(value, 0) {
			return nil, fmt.Errorf("invalid path %q: contains NUL byte", value)
		}
		return filepath.Clean(value), nil
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}

// expected describes what a value of kind must look like, for error messages.
func expected(kind Kind, choices []string) string {
	if kind == KindChoice {
		return "one of " + strings.Join(choices, "|")
	}
	return kind.String()
}
