// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package names recovers human-readable names from the CRC32 key
// hashes used throughout parameter archives.
//
// Hashing is one-way, so recovery is a reverse table built from three
// sources, in order of registration:
//
//   - the bundled reference list (data/names.jsonc), covering the
//     structural keys (Def, ChildIdx, ...) and the commonly seen
//     parameter and class names;
//   - the synthetic numbered slot names ("AI_0" .. "Query_1000") that
//     segment entries are keyed by, precomputed once at table
//     construction so later lookups are plain map hits;
//   - strings observed while walking a loaded archive ([Table.Harvest])
//     and any caller-supplied extras ([Table.Add], [Table.AddFile]),
//     which recover names the bundled list doesn't know.
//
// A hash with no entry in the table renders as a 0x-prefixed literal
// ([Table.Display]); the aamp text codec parses that form back to the
// same hash, so unknown names round-trip losslessly.
package names
