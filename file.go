// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pngchunk

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
)

// ReadFile reads and parses the PNG file at path.
func ReadFile(path string, opts ...OptionFunc) (*PNG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	p, err := Decode(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// WriteFile serializes p and writes it to path.
//
// The file is replaced atomically, so it's either fully written or left untouched.
func WriteFile(path string, p *PNG, mode fs.FileMode) error {
	return atomicWriteFile(path, p.Bytes(), mode)
}

func atomicWriteFile(path string, data []byte, mode fs.FileMode) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) //nolint:errcheck

		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
