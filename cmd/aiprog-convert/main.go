// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// aiprog-convert converts AI program archives between the binary and
// text forms. Both ends pick their format from the file extension:
// .yml/.yaml is text, anything else binary, and a trailing .zs adds
// zstd compression. With --to, the output path is derived from the
// input instead of given explicitly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aiprog-tools/aiprog/lib/aamp"
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
	var toFormat string
	var compressOutput bool
	var verbose bool

	flagSet := pflag.NewFlagSet("aiprog-convert", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to configuration file (default: $AIPROG_CONFIG)")
	flagSet.StringVar(&toFormat, "to", "", "derive the output path: \"text\" or \"binary\"")
	flagSet.BoolVarP(&compressOutput, "compress", "z", false, "zstd-compress the derived output (with --to)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the other aiprog
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("aiprog-convert")
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
	var inputPath, outputPath string
	switch {
	case len(args) == 2 && toFormat == "":
		inputPath, outputPath = args[0], args[1]
	case len(args) == 1 && toFormat != "":
		inputPath = args[0]
		var err error
		outputPath, err = derivePath(inputPath, toFormat, compressOutput)
		if err != nil {
			return err
		}
	default:
		printHelp(flagSet)
		return fmt.Errorf("expected <input> <output>, or <input> with --to")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	services, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}

	pio, err := aamp.ReadFile(inputPath)
	if err != nil {
		return err
	}
	logger.Debug("archive read", "path", inputPath)
	if services.Config.Viewer.HarvestNames {
		services.Names.Harvest(pio)
		logger.Debug("names harvested", "path", inputPath)
	}

	if err := aamp.WriteFile(outputPath, pio, services.Names); err != nil {
		return err
	}
	logger.Debug("archive written", "path", outputPath)
	fmt.Printf("%s -> %s\n", inputPath, outputPath)
	return nil
}

// derivePath swaps the format extension of the input path. The .zs
// suffix on the input is dropped; compress adds one to the output.
func derivePath(input, format string, compress bool) (string, error) {
	base := input
	if strings.EqualFold(filepath.Ext(base), ".zs") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var ext string
	switch format {
	case "text":
		ext = ".yml"
	case "binary":
		ext = ".baiprog"
	default:
		return "", fmt.Errorf("unknown --to format %q (want \"text\" or \"binary\")", format)
	}
	if compress {
		ext += ".zs"
	}
	out := base + ext
	if out == input {
		return "", fmt.Errorf("derived output path equals the input: %s", out)
	}
	return out, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `AI program converter — binary/text archive conversion.

Reads an archive and writes it back in another form. Formats are
chosen by extension on both ends: .yml and .yaml are the text form,
everything else binary, and a trailing .zs means zstd compression.
Text output resolves hashed keys through the configured name tables;
unresolved keys are written as 0x literals and survive conversion
back to binary unchanged.

Usage:
  aiprog-convert [flags] <input> <output>
  aiprog-convert [flags] --to text|binary <input>

Flags:
%s`, flagSet.FlagUsages())
}
