// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package stmt defines the shape of a parsed HLASM statement (spec.md
// §3.8): the boundary data type handed in by an external parser and
// consumed by package processing. It holds data only; it sits above
// caeval and ordsym, whose expression types its operands carry, and below
// macro and hlctx, so that both can depend on the statement shape without
// creating an import cycle with processing, which drives them.
package stmt
