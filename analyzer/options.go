// Licensed under the Apache License, Version 2.0; see LICENSE.

package analyzer

import (
	"log"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
)

// Options carries Run's tunables, assembled from a chain of Option
// functions (spec.md §3.9 expansion).
type Options struct {
	ActrDefault           int32
	UnknownOpcodeSeverity diag.Severity
	Trace                 bool
	Logger                *log.Logger
	OpcodeCatalogue       []string
	MaxDiagnostics        int
}

// Option configures an analysis run.
type Option func(*Options) error

func defaultOptions() *Options {
	return &Options{
		ActrDefault:           4096,
		UnknownOpcodeSeverity: diag.SeverityWarning,
		Logger:                log.New(log.Writer(), "", log.LstdFlags),
	}
}

// WithActrDefault overrides the ACTR branch counter new scopes start
// with (spec.md §8's default of 4096).
func WithActrDefault(n int32) Option {
	return func(o *Options) error { o.ActrDefault = n; return nil }
}

// WithUnknownOpcodeSeverity sets the severity of the diagnostic emitted
// when an operation code resolves to neither a macro nor a recognized CA/
// assembler instruction and the OperandChecker does not recognize it
// either.
func WithUnknownOpcodeSeverity(sev diag.Severity) Option {
	return func(o *Options) error { o.UnknownOpcodeSeverity = sev; return nil }
}

// WithTrace turns on low-volume internal trace logging (processor
// push/pop, macro enter/leave, lookahead start/stop) on logger, distinct
// from the diagnostic stream (spec.md §3.11).
func WithTrace(logger *log.Logger) Option {
	return func(o *Options) error {
		o.Trace = true
		if logger != nil {
			o.Logger = logger
		}
		return nil
	}
}

// WithOpcodeCatalogue supplies the machine/assembler instruction names
// Queries.CompletionsAt offers alongside user-defined macro names; this
// module carries no instruction table of its own (spec.md §1 Non-goals).
func WithOpcodeCatalogue(names []string) Option {
	return func(o *Options) error {
		o.OpcodeCatalogue = append(o.OpcodeCatalogue[:0:0], names...)
		return nil
	}
}

// WithMaxDiagnostics caps the number of distinct diagnostics a run will
// collect before further ones are silently dropped; 0 (the default)
// means unlimited.
func WithMaxDiagnostics(n int) Option {
	return func(o *Options) error { o.MaxDiagnostics = n; return nil }
}
