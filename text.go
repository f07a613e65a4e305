// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// MaxTextSize limits the decompressed size of a text chunk.
const MaxTextSize = 16 << 20

// Compressor implements an optional interface for text chunk compression.
//
// Compress and Decompress append to the dest slice and return the result.
//
// Compressor should be safe for concurrent use by multiple goroutines.
type Compressor interface {
	Compress(src, dest []byte) ([]byte, error)
	Decompress(src, dest []byte) ([]byte, error)
	DecompressedSize(src []byte) (int64, error)
}

// NewTextChunk creates a chunk holding a text message.
//
// If c is not nil, the message is stored compressed.
func NewTextChunk(t ChunkType, msg string, c Compressor) (Chunk, error) {
	if !utf8.ValidString(msg) {
		return Chunk{}, ErrInvalidText
	}

	if c == nil {
		if err := checkDataLength(int64(len(msg))); err != nil {
			return Chunk{}, err
		}

		return newChunk(t, []byte(msg)), nil
	}

	compressed, err := c.Compress([]byte(msg), nil)
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to compress text: %w", err)
	}

	if err = checkDataLength(int64(len(compressed))); err != nil {
		return Chunk{}, err
	}

	return newChunk(t, compressed), nil
}

// checkDataLength verifies that n bytes of data fit into the chunk length field.
func checkDataLength(n int64) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: data length %d exceeds %d", ErrInvalidLengthField, n, math.MaxInt32)
	}

	return nil
}

// Text returns the chunk data as text, decompressing it with c if c is not nil.
func (c Chunk) Text(d Compressor) (string, error) {
	if d == nil {
		return c.DataString()
	}

	size, err := d.DecompressedSize(c.data)
	if err != nil {
		return "", fmt.Errorf("failed to get decompressed text size: %w", err)
	}

	if size < 0 || size > MaxTextSize {
		return "", fmt.Errorf("decompressed text size %d is out of range [0, %d]", size, MaxTextSize)
	}

	data, err := d.Decompress(c.data, make([]byte, 0, size))
	if err != nil {
		return "", fmt.Errorf("failed to decompress text: %w", err)
	}

	if int64(len(data)) > size {
		return "", fmt.Errorf("decompressed text is longer than the declared size %d", size)
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidText
	}

	return string(data), nil
}
