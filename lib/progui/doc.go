// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package progui implements the interactive archive viewer TUI on top
// of the consistency engine.
//
// The layout is two panes under a tab bar: the left pane shows either
// the derived program tree (tree tab) or a flat per-segment record
// listing (AI/Action/Behavior/Query tabs), the right pane shows the
// selected record's objects and parameters rendered through the
// reverse name table. A status bar at the bottom reports the file,
// dirty state, and the outcome of the last mutation.
//
// Structural mutations (add record, delete record, rename) run
// through the engine inside a tea.Cmd and deliver a one-shot
// mutationResultMsg. The model refuses to start a second mutation
// while one is in flight: the engine assumes a single mutator, and
// the gate is what enforces that from the UI side.
//
// Key exports:
//
//   - [Model] and [NewModel] -- the bubbletea model
//   - [KeyMap] and [DefaultKeyMap] -- key bindings
//   - [Theme], [DarkTheme], [LightTheme] -- color palettes
package progui
