// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// frameOverhead is the size of a chunk frame with empty data.
	frameOverhead = lengthSize + typeSize + crcSize
)

// Chunk is a single PNG chunk: length, type, data and CRC.
//
// Chunk owns its data, the data is copied on construction and on access.
type Chunk struct {
	data   []byte
	typ    ChunkType
	length uint32
	crc    uint32
}

// NewChunk creates a chunk, calculating its length and CRC.
//
// The data must not be longer than 2^31-1 bytes, the limit of the length field.
func NewChunk(t ChunkType, data []byte) Chunk {
	return newChunk(t, slices.Clone(data))
}

func newChunk(t ChunkType, data []byte) Chunk {
	return Chunk{
		data:   data,
		typ:    t,
		length: uint32(len(data)),
		crc:    checksum(t, data),
	}
}

// ParseChunk parses a buffer which holds exactly one chunk frame.
func ParseChunk(b []byte) (Chunk, error) {
	c, _, err := decodeFrame(b, true)

	return c, err
}

// ReadChunk parses the chunk frame at the start of b.
//
// The length field delimits the chunk data, b might hold more frames after it.
// ReadChunk returns the number of bytes consumed.
func ReadChunk(b []byte) (Chunk, int, error) {
	return decodeFrame(b, false)
}

// decodeFrame decodes one frame from the head of b.
//
// If exact is set, the frame should span the whole of b.
func decodeFrame(b []byte, exact bool) (Chunk, int, error) {
	if len(b) < frameOverhead {
		return Chunk{}, 0, ErrIncomplete
	}

	length := binary.BigEndian.Uint32(b[:lengthSize])
	available := uint64(len(b) - frameOverhead)

	switch {
	case exact && uint64(length) != available:
		return Chunk{}, 0, fmt.Errorf("%w: expected %d, found %d", ErrInvalidLengthField, available, length)
	case uint64(length) > available:
		return Chunk{}, 0, fmt.Errorf("%w: declared length %d, only %d bytes available", ErrIncomplete, length, available)
	}

	t, err := ParseChunkType([4]byte(b[lengthSize : lengthSize+typeSize]))
	if err != nil {
		return Chunk{}, 0, fmt.Errorf("%w: %w", ErrInvalidChunkType, err)
	}

	dataEnd := lengthSize + typeSize + int(length)

	c := newChunk(t, slices.Clone(b[lengthSize+typeSize:dataEnd]))

	if wire := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize]); wire != c.crc {
		return Chunk{}, 0, fmt.Errorf("%w: chunk %s, expected 0x%08x, found 0x%08x", ErrInvalidChecksum, t, c.crc, wire)
	}

	return c, dataEnd + crcSize, nil
}

// Length returns the length of the chunk data.
func (c Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk type.
func (c Chunk) Type() ChunkType {
	return c.typ
}

// Data returns a copy of the chunk data.
func (c Chunk) Data() []byte {
	return slices.Clone(c.data)
}

// CRC returns the chunk checksum.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the chunk data as a string.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidText
	}

	return string(c.data), nil
}

// Size returns the size of the chunk frame.
func (c Chunk) Size() int {
	return frameOverhead + len(c.data)
}

// Bytes returns the chunk frame: length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, c.Size()))
}

// AppendTo appends the chunk frame to dst and returns the result.
func (c Chunk) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, c.length)
	dst = append(dst, c.typ.b[:]...)
	dst = append(dst, c.data...)

	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// String implements fmt.Stringer.
func (c Chunk) String() string {
	var sb strings.Builder

	fmt.Fprintln(&sb, "Chunk {")
	fmt.Fprintf(&sb, "  Length: %d\n", c.length)
	fmt.Fprintf(&sb, "  Type: %s\n", c.typ)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.crc)
	fmt.Fprintln(&sb, "}")

	return sb.String()
}

func checksum(t ChunkType, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, t.b[:])

	return crc32.Update(crc, crc32.IEEETable, data)
}
