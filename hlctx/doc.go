// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package hlctx implements the HLASM context (spec.md §4.5): the single
// owning object holding the identifier store, the global variable table,
// the ordinary symbol table, the macro and copy-member registries, the
// OPSYN alias map, the source stack, the scope stack, and the SYSNDX
// counter. Package processing drives analysis by calling into a Context;
// hlctx itself performs no scheduling.
package hlctx
