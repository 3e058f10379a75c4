// Licensed under the Apache License, Version 2.0; see LICENSE.

package hlctx

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// CopyRegistry caches the statement sequence of every COPY member read so
// far, keyed by member name (spec.md §3.6).
type CopyRegistry struct {
	members map[idn.ID][]stmt.Statement
}

// NewCopyRegistry returns an empty CopyRegistry.
func NewCopyRegistry() *CopyRegistry {
	return &CopyRegistry{members: make(map[idn.ID][]stmt.Statement)}
}

// Get returns the cached body of member name, if it has been fetched
// before.
func (r *CopyRegistry) Get(name idn.ID) ([]stmt.Statement, bool) {
	b, ok := r.members[name]
	return b, ok
}

// Put caches member name's statement sequence, as fetched through the
// external library provider (spec.md §6).
func (r *CopyRegistry) Put(name idn.ID, body []stmt.Statement) {
	r.members[name] = body
}
