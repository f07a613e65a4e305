// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/siderolabs/go-pngchunk"
)

func printCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "list the chunks of PNG files",
		ArgsUsage: "<file> [file...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "details",
				Aliases: []string{"d"},
				Usage:   "print length and CRC of every chunk",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%s: expected %s", c.Command.Name, c.Command.ArgsUsage)
			}

			return st.printFiles(c, c.Args().Slice(), c.Bool("details"))
		},
	}
}

// printFiles loads the files concurrently and lists their chunks in the argument order.
func (st *state) printFiles(c *cli.Context, paths []string, details bool) error {
	files := make([]*pngchunk.PNG, len(paths))

	eg, ctx := errgroup.WithContext(c.Context)

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := pngchunk.ReadFile(path, st.options()...)
			if err != nil {
				return err
			}

			files[i] = p

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	for i, p := range files {
		printChunks(c.App.Writer, paths[i], p, details)
	}

	return nil
}

func printChunks(w io.Writer, path string, p *pngchunk.PNG, details bool) {
	fmt.Fprintf(w, "%s: %d chunks\n", path, p.Len())

	for i, chunk := range p.Chunks() {
		if details {
			fmt.Fprintf(w, "%d:%s", i+1, chunk)

			continue
		}

		fmt.Fprintf(w, "%d:%s\n", i+1, chunk.Type())
	}
}
