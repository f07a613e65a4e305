// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/siderolabs/gen/xtesting/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-pngchunk"
	"github.com/siderolabs/go-pngchunk/zstd"
)

func TestTextChunk(t *testing.T) {
	t.Parallel()

	compressor := must.Value(zstd.NewCompressor())(t)

	for _, test := range []struct {
		name       string
		message    string
		compressor pngchunk.Compressor
	}{
		{
			name:    "plain",
			message: "secret",
		},
		{
			name: "plain empty",
		},
		{
			name:       "compressed",
			message:    strings.Repeat("secret ", 1000),
			compressor: compressor,
		},
		{
			name:       "compressed empty",
			compressor: compressor,
		},
		{
			name:       "compressed unicode",
			message:    "секретное сообщение",
			compressor: compressor,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			chunk, err := pngchunk.NewTextChunk(pngchunk.MustChunkType("ruSt"), test.message, test.compressor)
			require.NoError(t, err)

			if test.compressor == nil {
				assert.Equal(t, test.message, string(chunk.Data()))
			}

			parsed, err := pngchunk.ParseChunk(chunk.Bytes())
			require.NoError(t, err)

			text, err := parsed.Text(test.compressor)
			require.NoError(t, err)

			assert.Equal(t, test.message, text)
		})
	}
}

func TestTextChunkCompresses(t *testing.T) {
	t.Parallel()

	compressor := must.Value(zstd.NewCompressor())(t)
	message := strings.Repeat("a", 4096)

	chunk, err := pngchunk.NewTextChunk(pngchunk.TypeTEXT, message, compressor)
	require.NoError(t, err)

	assert.Less(t, int(chunk.Length()), len(message))
}

func TestTextChunkInvalidMessage(t *testing.T) {
	t.Parallel()

	_, err := pngchunk.NewTextChunk(pngchunk.TypeTEXT, "\xff\xfe", nil)
	require.ErrorIs(t, err, pngchunk.ErrInvalidText)
}

type fakeCompressor struct {
	err  error
	size int64
}

func (c fakeCompressor) Compress(src, dest []byte) ([]byte, error) {
	return append(dest, src...), c.err
}

func (c fakeCompressor) Decompress(src, dest []byte) ([]byte, error) {
	return append(dest, src...), c.err
}

func (c fakeCompressor) DecompressedSize([]byte) (int64, error) {
	return c.size, nil
}

func TestTextDecompressErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	chunk := pngchunk.NewChunk(pngchunk.TypeTEXT, []byte("hello"))

	_, err := chunk.Text(fakeCompressor{size: pngchunk.MaxTextSize + 1})
	require.Error(t, err)

	_, err = chunk.Text(fakeCompressor{size: -1})
	require.Error(t, err)

	_, err = chunk.Text(fakeCompressor{size: 5, err: errBoom})
	require.ErrorIs(t, err, errBoom)

	_, err = pngchunk.NewTextChunk(pngchunk.TypeTEXT, "hello", fakeCompressor{err: errBoom})
	require.ErrorIs(t, err, errBoom)

	_, err = chunk.Text(fakeCompressor{size: 2})
	require.Error(t, err)

	text, err := chunk.Text(fakeCompressor{size: 5})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = pngchunk.NewChunk(pngchunk.TypeTEXT, []byte{0xff}).Text(fakeCompressor{size: 1})
	require.ErrorIs(t, err, pngchunk.ErrInvalidText)
}

func TestTextMultiFrame(t *testing.T) {
	t.Parallel()

	compressor := must.Value(zstd.NewCompressor())(t)

	small := must.Value(compressor.Compress([]byte(strings.Repeat("x", 1000)), nil))(t)
	large := must.Value(compressor.Compress([]byte(strings.Repeat("A", pngchunk.MaxTextSize+1)), nil))(t)

	for _, test := range []struct {
		name string
		data []byte
	}{
		{
			name: "small then large",
			data: append(append([]byte(nil), small...), large...),
		},
		{
			name: "small twice",
			data: append(append([]byte(nil), small...), small...),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			text, err := pngchunk.NewChunk(pngchunk.TypeTEXT, test.data).Text(compressor)
			require.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestTextByTypeCompressed(t *testing.T) {
	t.Parallel()

	compressor := must.Value(zstd.NewCompressor())(t)

	chunk := must.Value(pngchunk.NewTextChunk(pngchunk.MustChunkType("ruSt"), "secret", compressor))(t)

	p := must.Value(pngchunk.FromChunks([]pngchunk.Chunk{chunk}))(t)

	text, err := p.TextByType("ruSt", compressor)
	require.NoError(t, err)
	assert.Equal(t, "secret", text.ValueOrZero())
}
