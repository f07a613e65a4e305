// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"errors"
	"math"

	"go.uber.org/zap"
)

// Options defines settings for parsing and manipulating PNG files.
type Options struct {
	Logger *zap.Logger

	// MaxChunkLength limits the declared length of streamed chunk frames.
	MaxChunkLength uint32

	// StrictChunkTypes rejects chunk types which fail ChunkType.IsValid.
	StrictChunkTypes bool
}

// defaultOptions returns default initial values.
func defaultOptions() Options {
	return Options{
		Logger:         zap.NewNop(),
		MaxChunkLength: math.MaxInt32,
	}
}

func newOptions(opts []OptionFunc) (Options, error) {
	opt := defaultOptions()

	for _, o := range opts {
		if err := o(&opt); err != nil {
			return opt, err
		}
	}

	return opt, nil
}

// OptionFunc allows setting PNG options.
type OptionFunc func(*Options) error

// WithLogger sets logger for PNG operations.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(opt *Options) error {
		if logger == nil {
			return errors.New("logger should not be nil")
		}

		opt.Logger = logger

		return nil
	}
}

// WithStrictChunkTypes makes parsing reject chunk types with the reserved bit set.
//
// By default any alphabetic chunk type is accepted.
func WithStrictChunkTypes() OptionFunc {
	return func(opt *Options) error {
		opt.StrictChunkTypes = true

		return nil
	}
}

// WithMaxChunkLength sets the maximum chunk data length accepted by the streaming reader.
//
// Frames declaring a longer data length are rejected before any data is read.
// Default is 2^31-1, the maximum allowed by the PNG format.
func WithMaxChunkLength(length uint32) OptionFunc {
	return func(opt *Options) error {
		if length == 0 {
			return errors.New("max chunk length should be positive")
		}

		opt.MaxChunkLength = length

		return nil
	}
}
