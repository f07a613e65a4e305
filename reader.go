// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// initialFrameSize caps the buffer preallocated for a single frame.
const initialFrameSize = 64 << 10

// ChunkReader reads chunk frames one by one from an io.Reader.
//
// ChunkReader expects the stream to be positioned after the PNG signature.
// ChunkReader is not safe for concurrent use.
type ChunkReader struct {
	r   io.Reader
	err error

	opt Options

	// offset of the next frame in the stream
	off int64
}

// NewChunkReader creates a ChunkReader on top of r.
func NewChunkReader(r io.Reader, opts ...OptionFunc) (*ChunkReader, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return &ChunkReader{
		r:   r,
		opt: opt,
	}, nil
}

// Offset returns the stream offset of the next frame.
func (cr *ChunkReader) Offset() int64 {
	return cr.off
}

// Next reads the next chunk.
//
// Next returns io.EOF if the stream ends on a frame boundary, ErrIncomplete if it ends
// in the middle of a frame. Once Next fails, it keeps returning the same error.
func (cr *ChunkReader) Next() (Chunk, error) {
	if cr.err != nil {
		return Chunk{}, cr.err
	}

	c, err := cr.next()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			err = fmt.Errorf("chunk at offset %d: %w", cr.off, err)
		}

		cr.err = err

		return Chunk{}, err
	}

	cr.opt.Logger.Debug("read chunk", zap.Stringer("type", c.Type()), zap.Uint32("length", c.Length()), zap.Int64("offset", cr.off))

	cr.off += int64(c.Size())

	return c, nil
}

func (cr *ChunkReader) next() (Chunk, error) {
	var header [lengthSize]byte

	if _, err := io.ReadFull(cr.r, header[:]); err != nil {
		return Chunk{}, readError(err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length > cr.opt.MaxChunkLength {
		return Chunk{}, fmt.Errorf("%w: declared length %d exceeds the limit %d", ErrInvalidLengthField, length, cr.opt.MaxChunkLength)
	}

	// the buffer grows with the bytes actually received, not with the declared length
	var frame bytes.Buffer

	frame.Grow(min(frameOverhead+int(length), initialFrameSize))
	frame.Write(header[:])

	if _, err := io.CopyN(&frame, cr.r, int64(typeSize)+int64(length)+crcSize); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return Chunk{}, readError(err)
	}

	c, _, err := decodeFrame(frame.Bytes(), true)
	if err != nil {
		return Chunk{}, err
	}

	return c, cr.opt.checkType(c.Type())
}

// readError maps short reads to ErrIncomplete and passes other errors through.
func readError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrIncomplete
	}

	return err
}

// Decode reads a whole PNG file from r.
func Decode(r io.Reader, opts ...OptionFunc) (*PNG, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	var signature [8]byte

	n, err := io.ReadFull(r, signature[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	if err = checkSignature(signature[:n]); err != nil {
		return nil, err
	}

	cr := &ChunkReader{
		r:   r,
		opt: opt,
		off: int64(len(signature)),
	}

	p := &PNG{
		signature: signature,
		opt:       opt,
	}

	for {
		c, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return p, nil
		}

		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", len(p.chunks), err)
		}

		p.chunks = append(p.chunks, c)
	}
}
