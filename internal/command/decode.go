// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/siderolabs/go-pngchunk"
)

func decodeCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "print the message stored in a chunk",
		ArgsUsage: "<file> <chunk_type>",
		Flags:     []cli.Flag{compressFlag()},
		Action: func(c *cli.Context) error {
			if err := args(c, 2, 2); err != nil {
				return err
			}

			return st.decode(c, c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// decode prints the message of the first chunk of the given type.
//
// A missing chunk is reported, but it's not an error.
func (st *state) decode(c *cli.Context, path, chunkType string) error {
	compressor, err := st.compressor(c)
	if err != nil {
		return err
	}

	p, err := pngchunk.ReadFile(path, st.options()...)
	if err != nil {
		return err
	}

	message, err := p.TextByType(chunkType, compressor)
	if err != nil {
		return err
	}

	if !message.IsPresent() {
		fmt.Fprintf(c.App.Writer, "no such message for chunk_type: %s.\n", chunkType)

		return nil
	}

	fmt.Fprintf(c.App.Writer, "secret msg for %s is: %s\n", chunkType, message.ValueOrZero())

	return nil
}
