// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/siderolabs/go-pngchunk"
)

func encodeCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "append a message chunk to a PNG file",
		ArgsUsage: "<file> <chunk_type> <message> [output_file]",
		Flags:     []cli.Flag{compressFlag()},
		Action: func(c *cli.Context) error {
			if err := args(c, 3, 4); err != nil {
				return err
			}

			return st.encode(c, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Args().Get(3))
		},
	}
}

// encode appends the message to the file and writes the result to output.
//
// Without output nothing is written.
func (st *state) encode(c *cli.Context, path, chunkType, message, output string) error {
	t, err := pngchunk.ChunkTypeFromString(chunkType)
	if err != nil {
		return err
	}

	if st.cfg.Strict && !t.IsValid() {
		return fmt.Errorf("%w: %s has the reserved bit set", pngchunk.ErrInvalidChunkType, t)
	}

	compressor, err := st.compressor(c)
	if err != nil {
		return err
	}

	p, err := pngchunk.ReadFile(path, st.options()...)
	if err != nil {
		return err
	}

	chunk, err := pngchunk.NewTextChunk(t, message, compressor)
	if err != nil {
		return err
	}

	p.AppendChunk(chunk)

	if output == "" {
		fmt.Fprintln(c.App.Writer, "no output file given, nothing written")

		return nil
	}

	if err = pngchunk.WriteFile(output, p, 0o644); err != nil {
		return err
	}

	st.logger.Info("encoded message", zap.String("output", output), zap.Stringer("type", t), zap.Uint32("length", chunk.Length()))

	fmt.Fprintf(c.App.Writer, "encoded message for %s into %s\n", t, output)

	return nil
}
