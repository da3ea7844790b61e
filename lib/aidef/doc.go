// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package aidef provides the read-only services the consistency
// engine is constructed with: the class-definition catalog and the
// localization map.
//
// The [Catalog] lists, per segment, the classes a record may be
// seeded from. Each class definition names its child slots (AI and
// Action only) and its default instance parameters, which is exactly
// what [Catalog.BlankRecord] needs to build the Def, ChildIdx, and
// SInst objects of a freshly inserted record.
//
// The [Localizer] maps display strings to their translated form and
// is an identity function on misses, so untranslated names pass
// through unchanged.
//
// Both are parsed from bundled JSONC tables and may be extended from
// user-supplied files via configuration. Neither mutates after
// construction; both are safe to share.
package aidef
