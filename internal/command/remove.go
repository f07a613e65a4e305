// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/siderolabs/go-pngchunk"
)

func removeCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove the first chunk of a type, overwriting the file",
		ArgsUsage: "<file> <chunk_type>",
		Action: func(c *cli.Context) error {
			if err := args(c, 2, 2); err != nil {
				return err
			}

			return st.remove(c, c.Args().Get(0), c.Args().Get(1))
		},
	}
}

func (st *state) remove(c *cli.Context, path, chunkType string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	p, err := pngchunk.ReadFile(path, st.options()...)
	if err != nil {
		return err
	}

	chunk, err := p.RemoveChunk(chunkType)
	if err != nil {
		return err
	}

	if err = pngchunk.WriteFile(path, p, info.Mode().Perm()); err != nil {
		return err
	}

	st.logger.Info("removed chunk", zap.String("path", path), zap.Stringer("type", chunk.Type()), zap.Uint32("length", chunk.Length()))

	fmt.Fprintf(c.App.Writer, "remove chunk type: %s\n", chunkType)

	return nil
}
