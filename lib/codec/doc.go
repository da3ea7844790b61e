// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// the binary archive form.
//
// The tool uses two serialization formats with a clear boundary:
//
//   - YAML for the human-readable text form of a parameter archive
//     and for tool configuration.
//   - CBOR for the binary form of a parameter archive.
//
// This package pins one CBOR configuration so that every package
// encodes identically. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical archive always produces
// identical bytes, which keeps version-control diffs of re-saved
// archives empty when nothing changed.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (compressed file wrappers):
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
