// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package zstd implements compressed text chunks with zstd.
package zstd

import (
	"errors"

	"github.com/klauspost/compress/zstd"

	"github.com/siderolabs/go-pngchunk"
)

// Compressor implements pngchunk.Compressor using zstd compression.
//
// Decompression never produces more than pngchunk.MaxTextSize bytes,
// and never grows dest beyond its capacity.
type Compressor struct {
	dec *zstd.Decoder
	enc *zstd.Encoder
}

// NewCompressor creates new Compressor.
func NewCompressor(opts ...zstd.EOption) (*Compressor, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecodeAllCapLimit(true),
		zstd.WithDecoderMaxMemory(pngchunk.MaxTextSize),
	)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, err
	}

	return &Compressor{
		dec: dec,
		enc: enc,
	}, nil
}

// NewCompressorLevel creates new Compressor with the encoder level given by name,
// e.g. "fastest", "default", "better" or "best".
func NewCompressorLevel(level string) (*Compressor, error) {
	ok, l := zstd.EncoderLevelFromString(level)
	if !ok {
		return nil, errors.New("unknown zstd level: " + level)
	}

	return NewCompressor(zstd.WithEncoderLevel(l))
}

// Compress data using zstd.
func (c *Compressor) Compress(src, dest []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, dest), nil
}

// Decompress data using zstd.
//
// Output which doesn't fit into the spare capacity of dest is rejected with zstd.ErrDecoderSizeExceeded.
func (c *Compressor) Decompress(src, dest []byte) ([]byte, error) {
	return c.dec.DecodeAll(src, dest)
}

// DecompressedSize returns the size of the decompressed data as declared by the first frame header.
//
// The stream might contain more frames, so the declared size is not a bound on Decompress output.
func (c *Compressor) DecompressedSize(src []byte) (int64, error) {
	if len(src) == 0 {
		return 0, nil
	}

	var header zstd.Header

	if err := header.Decode(src); err != nil {
		return 0, err
	}

	if header.HasFCS {
		return int64(header.FrameContentSize), nil
	}

	return 0, errors.New("frame content size is not set")
}
