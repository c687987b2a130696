// Package ops implements the daybook operations: listing, batch upsert,
// deletion, sync reconciliation, app inventory, and file export/import.
// Each operation takes a context, a database handle, and an Input struct,
// keeping the persistence binding injected rather than ambient so tests can
// run against a throwaway database.
package ops

// Pagination limits
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// clampLimit applies the default and the configured cap to a list limit.
func clampLimit(limit, maxLimit int) int {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxListLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
