// Licensed under the Apache License, Version 2.0; see LICENSE.

// Command hlasmanalyze runs the analyzer core over a single source file
// from the command line, using the minimal reference Parser,
// LibraryProvider and OperandChecker implemented in this package. It is
// a driver for exercising the core, not a substitute for a real HLASM
// front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/analyzer"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
)

func main() {
	var (
		copyDir     = flag.String("copydir", ".", "directory to search for COPY members (`name`.cpy)")
		trace       = flag.Bool("trace", false, "log internal processor trace lines to stderr")
		actrDefault = flag.Int("actr", 4096, "default ACTR branch counter for macro invocations")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hlasmanalyze [flags] <file>")
		os.Exit(2)
	}
	file := flag.Arg(0)

	if err := run(file, *copyDir, *trace, int32(*actrDefault)); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(file, copyDir string, trace bool, actrDefault int32) error {
	ids := idn.NewStore()

	p, err := newLineParser(ids, file)
	if err != nil {
		return errors.Wrapf(err, "opening %s", file)
	}

	opts := []analyzer.Option{
		analyzer.WithActrDefault(actrDefault),
	}
	if trace {
		opts = append(opts, analyzer.WithTrace(log.New(os.Stderr, "", log.LstdFlags)))
	}

	result, err := analyzer.Run(
		context.Background(),
		file,
		ids,
		p,
		&fsLibrary{ids: ids, dir: copyDir},
		attrChecker{},
		noopChecker{},
		opts...,
	)
	for _, d := range result.Diagnostics {
		fmt.Println(d.String())
	}
	if err != nil {
		return errors.Wrap(err, "analysis failed")
	}
	return nil
}
