// Package models defines the core domain models for Konta.
//
// # Models
//
//   - Member: a person sharing household expenses, with a running debt balance
//   - Bill: a one-time shared expense divided evenly among the members present
//     when it was added
//   - LogEntry: one row of the append-only history of ledger-affecting actions
//   - User: the administrative account allowed to change the ledger
//
// # Conventions
//
// 1. **Positive debt means the member owes money.** Bills increase debt,
// payments decrease it. Nothing keeps a balance non-negative.
// 2. **Money is decimal.** Amounts and balances are decimal.Decimal values;
// binary floating point never touches the ledger.
// 3. **IDs are opaque strings** (UUIDs generated by the store).
// 4. **Relationships use IDs**, never pointers between models.
package models
