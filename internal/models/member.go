package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is a person sharing household expenses.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name. Required.
	Name string

	// Mail is the optional contact address used for the monthly summary.
	Mail string

	// Debt is the running balance. Positive means the member owes money.
	Debt decimal.Decimal

	// CreatedAt is when the member was added.
	CreatedAt time.Time
}

// HasMail reports whether the member can receive the monthly summary.
func (m *Member) HasMail() bool {
	return m.Mail != ""
}
