// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// aiprog-viewer is an interactive terminal UI for browsing and editing
// AI program archives. It renders the derived program tree alongside
// flat per-segment listings, with record insertion, deletion, and
// renaming wired through the consistency engine so positional
// references stay valid across edits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/aiprog-tools/aiprog/lib/bootstrap"
	"github.com/aiprog-tools/aiprog/lib/progui"
	"github.com/aiprog-tools/aiprog/lib/version"
	tea "github.com/charmbracelet/bubbletea"
)

// startTabs maps the configured start tab to its UI tab.
var startTabs = map[string]progui.Tab{
	"tree":     progui.TabTree,
	"ai":       progui.TabAI,
	"action":   progui.TabAction,
	"behavior": progui.TabBehavior,
	"query":    progui.TabQuery,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string

	flagSet := pflag.NewFlagSet("aiprog-viewer", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to configuration file (default: $AIPROG_CONFIG)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the other aiprog
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("aiprog-viewer")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return fmt.Errorf("expected exactly one archive path, got %d arguments", len(args))
	}
	archivePath := args[0]

	services, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}

	program, err := services.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archivePath, err)
	}

	model := progui.NewModel(program, services.Names, archivePath, progui.ThemeByName(services.Config.Viewer.Theme))
	if tab, ok := startTabs[services.Config.Viewer.Tab]; ok {
		model.SetTab(tab)
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `AI program viewer — interactive terminal UI for archive editing.

Opens a .baiprog, .yml, or .yaml archive (optionally .zs-compressed)
and presents the derived program tree plus flat segment listings.
Records can be added, deleted, and renamed in place; positional
references are rewritten as the container changes. Save writes back
to the opened path in its original format.

Usage:
  aiprog-viewer [flags] <archive>

Flags:
%s`, flagSet.FlagUsages())
}
