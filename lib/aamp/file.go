// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ReadFile loads a parameter archive from path. The format is chosen
// by extension: .yml and .yaml parse as the text form, everything
// else as binary. A trailing .zs means the file is zstd-compressed;
// the extension underneath chooses the format as usual
// (program.baiprog.zs, program.yml.zs).
func ReadFile(path string) (*ParameterIO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := path
	if strings.EqualFold(filepath.Ext(name), ".zs") {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	var pio *ParameterIO
	if isTextExt(filepath.Ext(name)) {
		pio, err = ParseText(data)
	} else {
		pio, err = ParseBinary(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pio, nil
}

// WriteFile serializes pio and writes it to path, choosing format and
// compression from the extension the same way [ReadFile] does. The
// resolver is used only by the text form; pass nil to render all keys
// as hash literals.
func WriteFile(path string, pio *ParameterIO, resolver NameResolver) error {
	name := path
	compressed := false
	if strings.EqualFold(filepath.Ext(name), ".zs") {
		compressed = true
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	var data []byte
	var err error
	if isTextExt(filepath.Ext(name)) {
		data, err = WriteText(pio, resolver)
	} else {
		data, err = WriteBinary(pio)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if compressed {
		data, err = compress(data)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isTextExt(ext string) bool {
	return strings.EqualFold(ext, ".yml") || strings.EqualFold(ext, ".yaml")
}

func decompress(data []byte) ([]byte, error) {
	reader, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return reader.DecodeAll(data, nil)
}

func compress(data []byte) ([]byte, error) {
	writer, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := writer.EncodeAll(data, nil)
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}
