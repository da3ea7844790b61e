// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap assembles the lookup-table services the aiprog
// binaries share: the reverse name table, the class catalog, and the
// localization map, each built from its bundled data and then layered
// with the overrides named in the configuration.
//
// All three binaries go through [Load] so that a user's AIPROG_CONFIG
// affects inspect, convert, and the viewer identically. This package
// exists to keep that wiring in one place; it holds no state beyond
// the constructed services.
package bootstrap
