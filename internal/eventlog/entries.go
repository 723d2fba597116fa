package eventlog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/money"
)

// Payment records a single member paying amount.
func Payment(m *models.Member, amount decimal.Decimal) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindPayment,
		EntityID:    m.ID,
		Amount:      decimal.NewNullDecimal(amount),
		Description: fmt.Sprintf("%s paid %s", m.Name, money.Format(amount)),
	}
}

// PaymentAll records every member paying amount.
func PaymentAll(amount decimal.Decimal) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindPaymentAll,
		Amount:      decimal.NewNullDecimal(amount),
		Description: fmt.Sprintf("Everyone paid %s", money.Format(amount)),
	}
}

// BillAdded records a new bill.
func BillAdded(b *models.Bill) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindBillAdded,
		EntityID:    b.ID,
		Amount:      decimal.NewNullDecimal(b.Amount),
		Description: fmt.Sprintf("Added bill %s of %s", b.Description, money.Format(b.Amount)),
	}
}

// BillUpdated records an edit of b whose amount used to be oldAmount.
func BillUpdated(b *models.Bill, oldAmount decimal.Decimal) *models.LogEntry {
	return &models.LogEntry{
		Kind:     models.KindBillUpdated,
		EntityID: b.ID,
		Amount:   decimal.NewNullDecimal(b.Amount),
		Description: fmt.Sprintf("Updated bill %s of %s (was %s)",
			b.Description, money.Format(b.Amount), money.Format(oldAmount)),
	}
}

// BillDeleted records the deletion of b.
func BillDeleted(b *models.Bill) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindBillDeleted,
		EntityID:    b.ID,
		Amount:      decimal.NewNullDecimal(b.Amount),
		Description: fmt.Sprintf("Deleted bill %s of %s", b.Description, money.Format(b.Amount)),
	}
}

// MemberAdded records a new member. The initial debt, if any, is the amount.
func MemberAdded(m *models.Member) *models.LogEntry {
	e := &models.LogEntry{
		Kind:        models.KindMemberAdded,
		EntityID:    m.ID,
		Description: fmt.Sprintf("Added member %s", m.Name),
	}
	if !m.Debt.IsZero() {
		e.Amount = decimal.NewNullDecimal(m.Debt)
	}
	return e
}

// MemberUpdated records an edit of m.
func MemberUpdated(m *models.Member) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindMemberUpdated,
		EntityID:    m.ID,
		Description: fmt.Sprintf("Updated member %s", m.Name),
	}
}

// MemberDeleted records the removal of m. The amount is the balance it left with.
func MemberDeleted(m *models.Member) *models.LogEntry {
	return &models.LogEntry{
		Kind:        models.KindMemberDeleted,
		EntityID:    m.ID,
		Amount:      decimal.NewNullDecimal(m.Debt),
		Description: fmt.Sprintf("Deleted member %s", m.Name),
	}
}
