// Licensed under the Apache License, Version 2.0; see LICENSE.

package main

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// fsLibrary is a reference processing.LibraryProvider: COPY members are
// ".cpy" files under a single search directory. A real library provider
// would search a concatenation of PDS-like directories; this is the
// minimal glue needed to make the CLI runnable, not a core concern.
type fsLibrary struct {
	ids *idn.Store
	dir string
}

func (l *fsLibrary) Lookup(name idn.ID) ([]stmt.Statement, error) {
	file := filepath.Join(l.dir, l.ids.Text(name)+".cpy")
	p, err := newLineParser(l.ids, file)
	if err != nil {
		return nil, errors.Wrapf(err, "loading COPY member %s", l.ids.Text(name))
	}
	var out []stmt.Statement
	for {
		s, ok, err := p.Next(context.Background())
		if err != nil {
			return nil, errors.Wrapf(err, "reading COPY member %s", l.ids.Text(name))
		}
		if !ok {
			return out, nil
		}
		out = append(out, s)
	}
}

// noopChecker is a reference processing.OperandChecker: it accepts every
// opcode as known and reports no operand diagnostics; attrChecker below
// is the matching AttributeProvider and reports no attribute
// information. Both defer all instruction-specific knowledge to a real
// front end. This module carries no machine-instruction table by design.
type noopChecker struct{}

func (noopChecker) Check(opcode idn.ID, operands stmt.Operands) ([]diag.Diagnostic, bool) {
	return nil, true
}

type attrChecker struct{}

func (attrChecker) Attributes(s stmt.Statement) (ordsym.Attrs, bool) {
	return ordsym.Attrs{}, false
}
