// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package progui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the archive viewer. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Per-segment accents, in AI/Action/Behavior/Query order. The
	// tab bar and record listings color records by their segment.
	SegmentColors [4]lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar accents.
	ErrorText lipgloss.Color
	DirtyText lipgloss.Color
}

// DarkTheme is the built-in dark-terminal color scheme.
var DarkTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	SegmentColors: [4]lipgloss.Color{
		lipgloss.Color("81"),  // AI: cyan.
		lipgloss.Color("150"), // Action: green.
		lipgloss.Color("215"), // Behavior: orange.
		lipgloss.Color("183"), // Query: purple.
	},
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("243"),
	ErrorText:        lipgloss.Color("203"),
	DirtyText:        lipgloss.Color("221"),
}

// LightTheme is the light-terminal color scheme.
var LightTheme = Theme{
	NormalText:         lipgloss.Color("235"),
	FaintText:          lipgloss.Color("245"),
	SelectedBackground: lipgloss.Color("253"),
	SelectedForeground: lipgloss.Color("232"),
	SegmentColors: [4]lipgloss.Color{
		lipgloss.Color("31"),
		lipgloss.Color("28"),
		lipgloss.Color("130"),
		lipgloss.Color("91"),
	},
	HeaderForeground: lipgloss.Color("232"),
	BorderColor:      lipgloss.Color("249"),
	HelpText:         lipgloss.Color("245"),
	ErrorText:        lipgloss.Color("124"),
	DirtyText:        lipgloss.Color("94"),
}

// ThemeByName maps a config theme name to its palette, defaulting to
// dark for unknown names.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DarkTheme
}
