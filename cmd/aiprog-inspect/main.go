// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// aiprog-inspect prints a read-only report of an AI program archive:
// record counts, the derived program tree, the flat per-segment
// listings, and optionally every reference location pointing at one
// record. Useful for diffing archives in scripts and for checking
// what an edit in the viewer actually did.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aiprog-tools/aiprog/lib/aiprog"
	"github.com/aiprog-tools/aiprog/lib/bootstrap"
	"github.com/aiprog-tools/aiprog/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var refsTarget int
	var verbose bool

	flagSet := pflag.NewFlagSet("aiprog-inspect", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to configuration file (default: $AIPROG_CONFIG)")
	flagSet.IntVar(&refsTarget, "refs", -1, "also list every reference to this global index")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the other aiprog
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("aiprog-inspect")
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

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	services, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}
	logger.Debug("services loaded",
		"extra_name_tables", len(services.Config.Tables.Names),
		"harvest", services.Config.Viewer.HarvestNames)

	program, err := services.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archivePath, err)
	}
	logger.Debug("archive loaded", "path", archivePath, "records", program.Len())

	printSummary(archivePath, program)

	if err := printTree(program); err != nil {
		return err
	}

	if err := printSegments(program); err != nil {
		return err
	}

	if refsTarget >= 0 {
		if err := printReferences(program, refsTarget); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(path string, program *aiprog.Program) {
	fmt.Printf("%s: %d records (%d AI, %d Action, %d Behavior, %d Query)\n",
		path, program.Len(),
		program.SegmentLen(aiprog.SegmentAI),
		program.SegmentLen(aiprog.SegmentAction),
		program.SegmentLen(aiprog.SegmentBehavior),
		program.SegmentLen(aiprog.SegmentQuery))
}

func printTree(program *aiprog.Program) error {
	roots, err := program.Tree()
	if err != nil {
		return fmt.Errorf("deriving tree: %w", err)
	}
	fmt.Println("\nTree:")
	if len(roots) == 0 {
		fmt.Println("  (no root AI records)")
		return nil
	}
	for _, root := range roots {
		printTreeNode(root, 1)
	}
	return nil
}

func printTreeNode(node *aiprog.TreeNode, depth int) {
	fmt.Printf("%s%s [%d]\n", strings.Repeat("  ", depth), node.Name, node.Index)
	for _, child := range node.Children {
		printTreeNode(child, depth+1)
	}
}

func printSegments(program *aiprog.Program) error {
	idx := 0
	for _, segment := range aiprog.Segments {
		fmt.Printf("\n%s:\n", segment)
		length := program.SegmentLen(segment)
		if length == 0 {
			fmt.Println("  (empty)")
		}
		for local := 0; local < length; local++ {
			name, err := program.DisplayName(idx)
			if err != nil {
				return err
			}
			class, err := program.ClassName(idx)
			if err != nil {
				return err
			}
			fmt.Printf("  %3d: %s (%s)\n", idx, name, class)
			idx++
		}
	}
	return nil
}

func printReferences(program *aiprog.Program, target int) error {
	refs, err := program.FindReferences(target)
	if err != nil {
		return fmt.Errorf("finding references to %d: %w", target, err)
	}
	fmt.Printf("\nReferences to %d: %d\n", target, refs.Total())
	for key := range refs.Demos {
		fmt.Printf("  DemoAIActionIdx/%s\n", program.Names().Display(key))
	}
	for key := range refs.AIChildren {
		fmt.Printf("  %d/ChildIdx/%s\n", key.Record, program.Names().Display(key.Param))
	}
	for key := range refs.AIBehaviors {
		fmt.Printf("  %d/BehaviorIdx/%s\n", key.Record, program.Names().Display(key.Param))
	}
	for key := range refs.ActionBehaviors {
		fmt.Printf("  %d/BehaviorIdx/%s\n", key.Record, program.Names().Display(key.Param))
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `AI program inspector — read-only archive report.

Prints record counts, the derived program tree, and a flat listing of
every record per segment with its resolved name and class. With
--refs N, also lists every slot in the archive currently pointing at
global index N.

Usage:
  aiprog-inspect [flags] <archive>

Flags:
%s`, flagSet.FlagUsages())
}
