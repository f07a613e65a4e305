// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"fmt"
	"unicode/utf8"
)

// propertyBit is the ASCII case bit: set for lowercase letters.
const propertyBit = 0x20

// Well-known chunk types.
var (
	TypeIHDR = MustChunkType("IHDR")
	TypePLTE = MustChunkType("PLTE")
	TypeIDAT = MustChunkType("IDAT")
	TypeIEND = MustChunkType("IEND")
	TypeTEXT = MustChunkType("tEXt")
)

// ChunkType is a 4-byte chunk type code.
//
// Chunk properties are encoded in the case of each letter: critical (byte 0),
// public (byte 1), reserved (byte 2) and safe-to-copy (byte 3).
//
// ChunkType is immutable and comparable.
type ChunkType struct {
	b [4]byte
}

// ParseChunkType creates a ChunkType from raw bytes.
//
// Every byte should be an ASCII letter. The reserved bit is not checked, use IsValid for that.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, fmt.Errorf("%w: 0x%02x", ErrInvalidByte, c)
		}
	}

	return ChunkType{b: b}, nil
}

// ChunkTypeFromString creates a ChunkType from its textual form.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: got %d", ErrInvalidLength, len(s))
	}

	return ParseChunkType([4]byte([]byte(s)))
}

// MustChunkType is like ChunkTypeFromString, but panics on error.
func MustChunkType(s string) ChunkType {
	t, err := ChunkTypeFromString(s)
	if err != nil {
		panic(err)
	}

	return t
}

// Bytes returns a copy of the chunk type bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// IsCritical reports whether the chunk is critical (uppercase first letter).
func (t ChunkType) IsCritical() bool {
	return t.b[0]&propertyBit == 0
}

// IsPublic reports whether the chunk type is public (uppercase second letter).
func (t ChunkType) IsPublic() bool {
	return t.b[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit is clear (uppercase third letter).
func (t ChunkType) IsReservedBitValid() bool {
	return t.b[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors unaware of the chunk may copy it (lowercase fourth letter).
func (t ChunkType) IsSafeToCopy() bool {
	return t.b[3]&propertyBit != 0
}

// IsValid reports whether the chunk type is valid for the current PNG specification.
func (t ChunkType) IsValid() bool {
	for _, c := range t.b {
		if !isASCIILetter(c) {
			return false
		}
	}

	return t.IsReservedBitValid()
}

// String implements fmt.Stringer.
//
// Bytes which are not valid UTF-8 render as an empty string.
func (t ChunkType) String() string {
	if !utf8.Valid(t.b[:]) {
		return ""
	}

	return string(t.b[:])
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
