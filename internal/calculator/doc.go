// Package calculator holds the allocation rules of the ledger.
//
// A bill is divided evenly among the members it is charged to; every
// member's balance moves by the same per-member delta. Edits and deletions
// are expressed as further deltas over the same member count, and payments
// subtract from a single balance. The functions here are pure: callers
// load balances, apply the returned deltas and persist the result.
package calculator
