// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import "hash/crc32"

// Hash returns the CRC32-IEEE hash of name. This is the single key
// hash of the archive format: object names, list names, and parameter
// names are all stored as Hash(name). The format predates this tool;
// the algorithm is not negotiable.
func Hash(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}
