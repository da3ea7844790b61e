// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package progui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the archive viewer TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail
	// scrolling depending on current focus).
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding // Tree: collapse the selected node.
	Right    key.Binding // Tree: expand the selected node.
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching.
	FocusToggle key.Binding

	// Tab switching.
	TabTree     key.Binding
	TabAI       key.Binding
	TabAction   key.Binding
	TabBehavior key.Binding
	TabQuery    key.Binding

	// Mutations.
	Add    key.Binding // Open the class picker for the active segment.
	Delete key.Binding // Delete the selected record.
	Rename key.Binding // Open the rename prompt for the selected record.

	// File.
	Save key.Binding

	// Overlay dismissal.
	Cancel key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	TabTree: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tree"),
	),
	TabAI: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "AI"),
	),
	TabAction: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "actions"),
	),
	TabBehavior: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "behaviors"),
	),
	TabQuery: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "queries"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add record"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete record"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
