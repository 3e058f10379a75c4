// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package analyzer is the top-level façade: it wires hlctx, macro,
// ordsym and processing into one analysis run over a source file and
// its COPY library, then exposes the result through Queries.
package analyzer

import (
	"context"

	"github.com/pkg/errors"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/hlctx"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/processing"
)

// Result is the outcome of a completed (or cancelled) analysis run: the
// accumulated diagnostics and a Queries façade over the final context
// state.
type Result struct {
	Diagnostics []diag.Diagnostic
	Queries     *Queries
}

// Run analyzes file by driving p through the processing engine,
// collecting every diagnostic and leaving ctx's tables (ordinary
// symbols, variables, macros) queryable via the returned Result.
//
// ids must be the same Store used to build p, lib, attrs and checker:
// every idn.ID those collaborators produce is only meaningful against
// the Store that interned it.
func Run(
	ctx context.Context,
	file string,
	ids *idn.Store,
	p processing.Parser,
	lib processing.LibraryProvider,
	attrs processing.AttributeProvider,
	checker processing.OperandChecker,
	opts ...Option,
) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return Result{}, errors.Wrap(err, "applying analyzer option")
		}
	}

	hctx := hlctx.New(file, ids)
	hctx.OpenActr = o.ActrDefault
	if o.MaxDiagnostics > 0 {
		hctx.Sink.SetLimit(o.MaxDiagnostics)
	}

	cfg := processing.Config{
		ActrDefault:           o.ActrDefault,
		UnknownOpcodeSeverity: o.UnknownOpcodeSeverity,
		Trace:                 o.Trace,
		Logger:                o.Logger,
	}
	mgr := processing.NewManager(hctx, p, lib, attrs, checker, cfg)

	if err := mgr.Run(ctx); err != nil {
		return Result{
			Diagnostics: hctx.Sink.All(),
			Queries:     newQueries(hctx, o.OpcodeCatalogue),
		}, err
	}

	hctx.Ordsym.Finish()

	return Result{
		Diagnostics: hctx.Sink.All(),
		Queries:     newQueries(hctx, o.OpcodeCatalogue),
	}, nil
}
