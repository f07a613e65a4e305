// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-pngchunk"
)

func TestOptionErrors(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name string

		option pngchunk.OptionFunc
	}{
		{
			name:   "nil logger",
			option: pngchunk.WithLogger(nil),
		},
		{
			name:   "zero max chunk length",
			option: pngchunk.WithMaxChunkLength(0),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := pngchunk.Parse(pngchunk.Signature[:], test.option)
			require.Error(t, err)

			_, err = pngchunk.FromChunks(nil, test.option)
			require.Error(t, err)

			_, err = pngchunk.Decode(bytes.NewReader(pngchunk.Signature[:]), test.option)
			require.Error(t, err)

			_, err = pngchunk.NewChunkReader(bytes.NewReader(nil), test.option)
			require.Error(t, err)
		})
	}
}
