// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main provides the entry point for pngchunk.
//
// pngchunk hides text messages in PNG files as ancillary chunks.
package main

import (
	"fmt"
	"os"

	"github.com/siderolabs/go-pngchunk/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
