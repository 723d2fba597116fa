package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a shared expense charged evenly to the members present when it was added.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Description says what the bill was for (e.g., "Rent", "Internet").
	Description string

	// Amount is the full bill amount. Always positive.
	Amount decimal.Decimal

	// MemberCount is how many members the bill was divided among when it
	// was added. Later edits and deletion divide by this count so that a
	// member is always corrected by exactly the share they were charged.
	MemberCount int

	// CreatedAt is when the bill was added.
	CreatedAt time.Time
}
