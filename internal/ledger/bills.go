package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/calculator"
	"github.com/mmynk/konta/internal/eventlog"
	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/storage"
)

func validateBill(description string, amount decimal.Decimal) error {
	if description == "" {
		return validationErr("bill description is required")
	}
	if !amount.IsPositive() {
		return validationErr("bill amount must be positive, got %s", amount)
	}
	return nil
}

// AddBill charges a new bill evenly to every current member and remembers
// who was charged.
func (l *Ledger) AddBill(ctx context.Context, description string, amount decimal.Decimal) (*models.Bill, error) {
	description = strings.TrimSpace(description)
	if err := validateBill(description, amount); err != nil {
		return nil, l.fail(ctx, OpAddBill, time.Now(), err)
	}

	bill := &models.Bill{Description: description, Amount: amount}
	err := l.mutate(ctx, OpAddBill, func(tx storage.Tx) (*models.LogEntry, error) {
		members, err := tx.ListMembers(ctx)
		if err != nil {
			return nil, err
		}
		share, err := calculator.AllocateBill(amount, len(members))
		if err != nil {
			return nil, err
		}

		bill.MemberCount = len(members)
		if err := tx.InsertBill(ctx, bill); err != nil {
			return nil, err
		}

		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
			if err := tx.SetDebt(ctx, m.ID, calculator.ApplyDelta(m.Debt, share)); err != nil {
				return nil, err
			}
		}
		if err := tx.AddBillMembers(ctx, bill.ID, ids); err != nil {
			return nil, err
		}

		return eventlog.BillAdded(bill), nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// UpdateBill changes a bill's description and amount. The difference in
// per-member share is charged to the members the bill was originally charged
// to that still exist.
func (l *Ledger) UpdateBill(ctx context.Context, id, description string, newAmount decimal.Decimal) (*models.Bill, error) {
	description = strings.TrimSpace(description)
	if err := validateBill(description, newAmount); err != nil {
		return nil, l.fail(ctx, OpUpdateBill, time.Now(), err)
	}

	var bill *models.Bill
	err := l.mutate(ctx, OpUpdateBill, func(tx storage.Tx) (*models.LogEntry, error) {
		var err error
		if bill, err = tx.GetBill(ctx, id); err != nil {
			return nil, err
		}
		oldAmount := bill.Amount

		delta, err := calculator.ReallocateBillDelta(oldAmount, newAmount, bill.MemberCount)
		if err != nil {
			return nil, err
		}
		if err := applyToCharged(ctx, tx, bill.ID, delta); err != nil {
			return nil, err
		}

		bill.Description, bill.Amount = description, newAmount
		if err := tx.UpdateBill(ctx, bill); err != nil {
			return nil, err
		}
		return eventlog.BillUpdated(bill, oldAmount), nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBill reverses a bill's share from the members it was charged to that
// still exist, then deletes it.
func (l *Ledger) DeleteBill(ctx context.Context, id string) error {
	return l.mutate(ctx, OpDeleteBill, func(tx storage.Tx) (*models.LogEntry, error) {
		bill, err := tx.GetBill(ctx, id)
		if err != nil {
			return nil, err
		}

		delta, err := calculator.ReverseBill(bill.Amount, bill.MemberCount)
		if err != nil {
			return nil, err
		}
		if err := applyToCharged(ctx, tx, bill.ID, delta); err != nil {
			return nil, err
		}

		if err := tx.DeleteBill(ctx, bill.ID); err != nil {
			return nil, err
		}
		return eventlog.BillDeleted(bill), nil
	})
}

// applyToCharged adds delta to every surviving member a bill was charged to.
func applyToCharged(ctx context.Context, tx storage.Tx, billID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	ids, err := tx.ListBillMembers(ctx, billID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		m, err := tx.GetMember(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.SetDebt(ctx, id, calculator.ApplyDelta(m.Debt, delta)); err != nil {
			return err
		}
	}
	return nil
}
