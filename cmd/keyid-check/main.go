// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keyid/lib/codec"
	"github.com/bureau-foundation/keyid/lib/version"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

// formatText is the line-oriented output format. The other formats
// come from lib/codec.
const formatText = "text"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command-line flags.
type options struct {
	kind    string
	format  string
	stdin   bool
	verbose bool
	help    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Handle --version before flag parsing to match other binaries.
	if len(args) > 0 && args[0] == "--version" {
		if slices.Contains(args[1:], "--verbose") || slices.Contains(args[1:], "-v") {
			fmt.Fprintf(stdout, "keyid-check %s\n", version.Full())
			return exitValid
		}
		version.Print(stdout, "keyid-check")
		return exitValid
	}

	var opts options
	flagSet := pflag.NewFlagSet("keyid-check", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.kind, "kind", "module", "key kind for positional arguments: "+strings.Join(kindNames(), ", "))
	flagSet.StringVar(&opts.format, "format", formatText, "output format: text, json, yaml, cbor")
	flagSet.BoolVar(&opts.stdin, "stdin", false, "validate a JSON or YAML key document read from stdin")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log accepted keys as well as rejected ones")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if opts.help {
		printHelp(stdout, flagSet)
		return exitValid
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)

	out, err := newEncoder(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if opts.stdin {
		if flagSet.NArg() > 0 {
			fmt.Fprintf(stderr, "error: --stdin does not take positional arguments (got %q)\n", flagSet.Arg(0))
			return exitUsage
		}
		if flagSet.Changed("kind") {
			fmt.Fprintf(stderr, "error: --kind applies to positional arguments; a --stdin document names its kinds by field\n")
			return exitUsage
		}
		return checkDocument(logger, stdin, stdout, out)
	}

	parser, ok := kinds[opts.kind]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown kind %q (supported: %s)\n", opts.kind, strings.Join(kindNames(), ", "))
		return exitUsage
	}
	if flagSet.NArg() == 0 {
		fmt.Fprintf(stderr, "error: no keys given\n")
		printHelp(stderr, flagSet)
		return exitUsage
	}
	return checkArguments(logger, opts.kind, parser, flagSet.Args(), stdout, out)
}

// encoder renders validated output in one format.
type encoder struct {
	format codec.Format // empty for text
}

func newEncoder(name string) (encoder, error) {
	if name == formatText {
		return encoder{}, nil
	}
	format, err := codec.ParseFormat(name)
	if err != nil {
		return encoder{}, err
	}
	return encoder{format: format}, nil
}

// write encodes v to w. text renders the lines from textLines.
func (e encoder) write(w io.Writer, v any, textLines func() []string) error {
	if e.format == "" {
		for _, line := range textLines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := codec.Marshal(e.format, v)
	if err != nil {
		return fmt.Errorf("encoding %s output: %w", e.format, err)
	}
	if e.format == codec.FormatCBOR {
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("rendering CBOR diagnostic notation: %w", err)
		}
		_, err = fmt.Fprintln(w, notation)
		return err
	}
	_, err = w.Write(data)
	return err
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `keyid-check validates module, server and service IDs and cluster seeds.

Usage:
  keyid-check [--kind KIND] [--format FORMAT] KEY...
  keyid-check --stdin [--format FORMAT] < document
  keyid-check --version [--verbose]

The stdin document is JSON (comments and trailing commas allowed) or
YAML, with any of the fields module_id, server_id, service_id and
cluster_seed. Any other field is an error.

Flags:
%s`, flagSet.FlagUsages())
}
