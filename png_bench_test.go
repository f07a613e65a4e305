// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !race

package pngchunk_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-pngchunk"
)

func benchmarkPNG(b *testing.B) []byte {
	chunks := []pngchunk.Chunk{pngchunk.NewChunk(pngchunk.TypeIHDR, make([]byte, 13))}

	for range 16 {
		data, err := io.ReadAll(io.LimitReader(rand.Reader, 8192))
		require.NoError(b, err)

		chunks = append(chunks, pngchunk.NewChunk(pngchunk.TypeIDAT, data))
	}

	chunks = append(chunks, pngchunk.NewChunk(pngchunk.TypeIEND, nil))

	return testPNG(chunks...)
}

func BenchmarkParse(b *testing.B) {
	data := benchmarkPNG(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for range b.N {
		_, err := pngchunk.Parse(data)
		require.NoError(b, err)
	}
}

func BenchmarkDecode(b *testing.B) {
	data := benchmarkPNG(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for range b.N {
		_, err := pngchunk.Decode(bytes.NewReader(data))
		require.NoError(b, err)
	}
}

var sink []byte

func BenchmarkBytes(b *testing.B) {
	p, err := pngchunk.Parse(benchmarkPNG(b))
	require.NoError(b, err)

	b.ReportAllocs()
	b.SetBytes(int64(p.Size()))
	b.ResetTimer()

	for range b.N {
		sink = p.Bytes()
	}
}

func TestBenchmarkBytesAllocs(t *testing.T) {
	res := testing.Benchmark(BenchmarkBytes)

	if allocs := res.AllocsPerOp(); allocs > 1 {
		t.Fatalf("Expected AllocsPerOp <= 1, got %d", allocs)
	}
}

// BenchmarkDecodeTruncated decodes a stream which declares the largest chunk length
// but ends right after the chunk type.
func BenchmarkDecodeTruncated(b *testing.B) {
	data := append(bytes.Clone(pngchunk.Signature[:]), 0x7f, 0xff, 0xff, 0xff, 'I', 'E', 'N', 'D')

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, err := pngchunk.Decode(bytes.NewReader(data))
		assert.ErrorIs(b, err, pngchunk.ErrIncomplete)
	}
}

func TestDecodeTruncatedAllocs(t *testing.T) {
	res := testing.Benchmark(BenchmarkDecodeTruncated)

	if allocated := res.AllocedBytesPerOp(); allocated > 1<<20 {
		t.Fatalf("Expected AllocedBytesPerOp <= 1MiB, got %d", allocated)
	}
}
