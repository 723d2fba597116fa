package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
)

// divisionPlaces is the number of fractional digits kept by every division.
// Quotients are rounded half away from zero, so AllocateBill(a, n) and
// ReverseBill(a, n) are exact negations of each other.
const divisionPlaces = 16

// AllocateBill computes the per-member delta for a new bill: amount / members.
// The delta is added to the balance of every member the bill is charged to.
func AllocateBill(amount decimal.Decimal, members int) (decimal.Decimal, error) {
	if members <= 0 {
		return decimal.Zero, fmt.Errorf("%w: allocate %s", models.ErrDivisionUndefined, amount)
	}
	return amount.DivRound(decimal.NewFromInt(int64(members)), divisionPlaces), nil
}

// ReallocateBillDelta computes the per-member correction when a bill's amount
// changes from oldAmount to newAmount. It is the difference between the new
// and the old per-member allocation, i.e. (newAmount - oldAmount) / members,
// so that a later ReverseBill on newAmount undoes both exactly.
func ReallocateBillDelta(oldAmount, newAmount decimal.Decimal, members int) (decimal.Decimal, error) {
	oldShare, err := AllocateBill(oldAmount, members)
	if err != nil {
		return decimal.Zero, err
	}
	newShare, err := AllocateBill(newAmount, members)
	if err != nil {
		return decimal.Zero, err
	}
	return newShare.Sub(oldShare), nil
}

// ReverseBill computes the per-member delta that undoes a bill: -amount / members.
func ReverseBill(amount decimal.Decimal, members int) (decimal.Decimal, error) {
	share, err := AllocateBill(amount, members)
	if err != nil {
		return decimal.Zero, err
	}
	return share.Neg(), nil
}

// ApplyPayment returns the balance after a member pays amount.
// Negative amounts are accepted and increase the balance (payment reversal).
func ApplyPayment(balance, amount decimal.Decimal) decimal.Decimal {
	return balance.Sub(amount)
}

// ApplyDelta returns the balance after an allocation delta is charged.
func ApplyDelta(balance, delta decimal.Decimal) decimal.Decimal {
	return balance.Add(delta)
}

// Total sums balances or deltas.
func Total(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
