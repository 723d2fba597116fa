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

// AddMember adds a member with an optional starting balance.
func (l *Ledger) AddMember(ctx context.Context, name, mail string, initialDebt decimal.Decimal) (*models.Member, error) {
	name, mail = strings.TrimSpace(name), strings.TrimSpace(mail)
	if name == "" {
		return nil, l.fail(ctx, OpAddMember, time.Now(), validationErr("member name is required"))
	}

	m := &models.Member{Name: name, Mail: mail, Debt: initialDebt}
	err := l.mutate(ctx, OpAddMember, func(tx storage.Tx) (*models.LogEntry, error) {
		if err := tx.InsertMember(ctx, m); err != nil {
			return nil, err
		}
		return eventlog.MemberAdded(m), nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMember changes a member's name and contact address. The balance is untouched.
func (l *Ledger) UpdateMember(ctx context.Context, id, name, mail string) (*models.Member, error) {
	name, mail = strings.TrimSpace(name), strings.TrimSpace(mail)
	if name == "" {
		return nil, l.fail(ctx, OpUpdateMember, time.Now(), validationErr("member name is required"))
	}

	var m *models.Member
	err := l.mutate(ctx, OpUpdateMember, func(tx storage.Tx) (*models.LogEntry, error) {
		var err error
		if m, err = tx.GetMember(ctx, id); err != nil {
			return nil, err
		}
		m.Name, m.Mail = name, mail
		if err := tx.UpdateMember(ctx, m); err != nil {
			return nil, err
		}
		return eventlog.MemberUpdated(m), nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember deletes a member. Other balances are not rebalanced and past
// log entries stay as they are.
func (l *Ledger) RemoveMember(ctx context.Context, id string) error {
	return l.mutate(ctx, OpRemoveMember, func(tx storage.Tx) (*models.LogEntry, error) {
		m, err := tx.GetMember(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := tx.DeleteMember(ctx, id); err != nil {
			return nil, err
		}
		return eventlog.MemberDeleted(m), nil
	})
}

// Pay records a payment by one member. A negative amount reverses a payment.
func (l *Ledger) Pay(ctx context.Context, memberID string, amount decimal.Decimal) (*models.Member, error) {
	var m *models.Member
	err := l.mutate(ctx, OpPay, func(tx storage.Tx) (*models.LogEntry, error) {
		var err error
		if m, err = tx.GetMember(ctx, memberID); err != nil {
			return nil, err
		}
		m.Debt = calculator.ApplyPayment(m.Debt, amount)
		if err := tx.SetDebt(ctx, m.ID, m.Debt); err != nil {
			return nil, err
		}
		return eventlog.Payment(m, amount), nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// PayAll records the same payment by every member, all or nothing.
// With no members the entry is still logged.
func (l *Ledger) PayAll(ctx context.Context, amount decimal.Decimal) ([]*models.Member, error) {
	var members []*models.Member
	err := l.mutate(ctx, OpPayAll, func(tx storage.Tx) (*models.LogEntry, error) {
		var err error
		if members, err = tx.ListMembers(ctx); err != nil {
			return nil, err
		}
		for _, m := range members {
			m.Debt = calculator.ApplyPayment(m.Debt, amount)
			if err := tx.SetDebt(ctx, m.ID, m.Debt); err != nil {
				return nil, err
			}
		}
		return eventlog.PaymentAll(amount), nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
