// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import "errors"

// Chunk type errors.
var (
	// ErrInvalidLength is returned when a chunk type string is not exactly 4 bytes long.
	ErrInvalidLength = errors.New("chunk type should be exactly 4 bytes")

	// ErrInvalidByte is returned when a chunk type contains a non-alphabetic byte.
	ErrInvalidByte = errors.New("invalid byte in chunk type")
)

// Chunk and container errors.
var (
	// ErrIncomplete is returned when the input ends before the frame does.
	ErrIncomplete = errors.New("chunk did not contain all the required data")

	// ErrInvalidLengthField is returned when the declared chunk length doesn't fit the input.
	ErrInvalidLengthField = errors.New("invalid length field")

	// ErrInvalidChunkType is returned when the chunk type bytes of a frame are rejected.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrInvalidChecksum is returned when the parsed CRC doesn't match the calculated one.
	ErrInvalidChecksum = errors.New("parsed checksum didn't match calculated checksum")

	// ErrInvalidSignature is returned when the input doesn't start with the PNG signature.
	ErrInvalidSignature = errors.New("invalid PNG signature")

	// ErrChunkTypeNotFound is returned when removing a chunk type which is not present.
	ErrChunkTypeNotFound = errors.New("chunk type not found")

	// ErrInvalidText is returned when chunk data is not valid UTF-8 text.
	ErrInvalidText = errors.New("chunk data is not valid UTF-8")
)
