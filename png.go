// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package pngchunk provides access to the chunk layer of PNG files.
//
// A PNG file is a fixed signature followed by a sequence of chunks, each one
// length-prefixed, typed and protected with a CRC. The package parses files
// into that sequence, allows to look up, append and remove chunks, and
// serializes them back byte for byte.
package pngchunk

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/siderolabs/gen/optional"
	"github.com/siderolabs/gen/xslices"
	"go.uber.org/zap"
)

// Signature is the standard PNG file signature.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG is a PNG file as a signature followed by a list of chunks.
//
// PNG is not safe for concurrent use, callers should serialize access
// when mutating it.
type PNG struct {
	// chunks in the file order
	chunks []Chunk

	opt Options

	signature [8]byte
}

// Parse parses PNG file contents.
//
// Any malformed chunk fails the whole parse.
func Parse(b []byte, opts ...OptionFunc) (*PNG, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	if err = checkSignature(b); err != nil {
		return nil, err
	}

	p := &PNG{
		signature: Signature,
		opt:       opt,
	}

	for off := len(Signature); off < len(b); {
		c, n, err := ReadChunk(b[off:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), off, err)
		}

		if err = opt.checkType(c.Type()); err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), off, err)
		}

		opt.Logger.Debug("parsed chunk", zap.Stringer("type", c.Type()), zap.Uint32("length", c.Length()), zap.Int("offset", off))

		p.chunks = append(p.chunks, c)
		off += n
	}

	return p, nil
}

// FromChunks creates a PNG with the standard signature and the given chunks.
func FromChunks(chunks []Chunk, opts ...OptionFunc) (*PNG, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return &PNG{
		signature: Signature,
		chunks:    slices.Clone(chunks),
		opt:       opt,
	}, nil
}

// Signature returns the file signature.
func (p *PNG) Signature() [8]byte {
	return p.signature
}

// Chunks returns the chunks in the file order.
func (p *PNG) Chunks() []Chunk {
	return slices.Clone(p.chunks)
}

// Len returns the number of chunks.
func (p *PNG) Len() int {
	return len(p.chunks)
}

// ChunkTypes returns the textual chunk types in the file order.
func (p *PNG) ChunkTypes() []string {
	return xslices.Map(p.chunks, func(c Chunk) string {
		return c.Type().String()
	})
}

// ChunkByType returns the first chunk of the given type.
func (p *PNG) ChunkByType(tag string) optional.Optional[Chunk] {
	idx := p.index(tag)
	if idx == -1 {
		return optional.None[Chunk]()
	}

	return optional.Some(p.chunks[idx])
}

// TextByType returns the text of the first chunk of the given type.
//
// If c is not nil, chunk data is decompressed with it.
func (p *PNG) TextByType(tag string, c Compressor) (optional.Optional[string], error) {
	chunk := p.ChunkByType(tag)
	if !chunk.IsPresent() {
		return optional.None[string](), nil
	}

	text, err := chunk.ValueOrZero().Text(c)
	if err != nil {
		return optional.None[string](), fmt.Errorf("chunk %s: %w", tag, err)
	}

	return optional.Some(text), nil
}

// AppendChunk appends a chunk to the end of the file.
//
// Chunks of the same type might be appended multiple times.
func (p *PNG) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)

	p.opt.Logger.Debug("appended chunk", zap.Stringer("type", c.Type()), zap.Uint32("length", c.Length()))
}

// RemoveChunk removes the first chunk of the given type and returns it.
func (p *PNG) RemoveChunk(tag string) (Chunk, error) {
	idx := p.index(tag)
	if idx == -1 {
		return Chunk{}, fmt.Errorf("%w: %q", ErrChunkTypeNotFound, tag)
	}

	c := p.chunks[idx]
	p.chunks = slices.Delete(p.chunks, idx, idx+1)

	p.opt.Logger.Debug("removed chunk", zap.Stringer("type", c.Type()), zap.Int("index", idx))

	return c, nil
}

// Size returns the size of the serialized file.
func (p *PNG) Size() int {
	size := len(p.signature)

	for _, c := range p.chunks {
		size += c.Size()
	}

	return size
}

// Bytes serializes the file: signature followed by all chunk frames.
func (p *PNG) Bytes() []byte {
	b := make([]byte, 0, p.Size())
	b = append(b, p.signature[:]...)

	for _, c := range p.chunks {
		b = c.AppendTo(b)
	}

	return b
}

func (p *PNG) index(tag string) int {
	return slices.IndexFunc(p.chunks, func(c Chunk) bool {
		return c.Type().String() == tag
	})
}

func checkSignature(b []byte) error {
	if len(b) < len(Signature) {
		return fmt.Errorf("%w: file is %d bytes long", ErrIncomplete, len(b))
	}

	if !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return fmt.Errorf("%w: % x", ErrInvalidSignature, b[:len(Signature)])
	}

	return nil
}

func (opt Options) checkType(t ChunkType) error {
	if t.IsValid() {
		return nil
	}

	if opt.StrictChunkTypes {
		return fmt.Errorf("%w: %s has the reserved bit set", ErrInvalidChunkType, t)
	}

	opt.Logger.Debug("chunk type has the reserved bit set", zap.Stringer("type", t))

	return nil
}
