// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command iqargs parses a script's arguments against a grammar file and
// prints the typed result, getopt style:
//
//	eval "$(iqargs --grammar cli.toml --format shell -- "$@")" || exit
package main

import "os"

func main() {
	os.Exit(run(os.Args, os.Getenv, os.Stdout, os.Stderr))
}
