// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package aamp models binary parameter archives: trees of ordered,
// hash-keyed parameter objects and parameter lists rooted in a
// [ParameterIO].
//
// Every key in an archive is the CRC32-IEEE hash of a human-readable
// name (see [Hash]). Hashing is one-way; recovering names requires a
// reverse table (package names). This package stores keys as raw
// hashes and leaves name recovery to callers.
//
// Order matters everywhere: a record's position inside its segment
// list defines the index other records use to reference it, so all
// collections here are ordered maps ([OrderedMap]) that preserve
// insertion order and support order-preserving removal.
//
// Two serialized forms are supported:
//
//   - Text: a YAML document (ParseText, WriteText) with custom tags
//     for the parameter types YAML cannot distinguish natively (!u,
//     !str32, !vec3, ...). Keys render through a names table when
//     resolvable, else as 0x-prefixed hash literals that round-trip.
//   - Binary: deterministic CBOR (ParseBinary, WriteBinary) over an
//     explicit pair-list representation so key order survives. Same
//     logical archive always produces identical bytes.
//
// ReadFile and WriteFile dispatch on file extension (.yml/.yaml for
// text, anything else binary) and transparently handle a trailing
// .zs as zstd compression.
package aamp
