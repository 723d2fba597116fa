package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/calculator"
	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/notify"
)

// DefaultEventLimit is how many log entries Events returns for a limit of zero.
const DefaultEventLimit = 100

// Members returns every member ordered by creation time.
func (l *Ledger) Members(ctx context.Context) ([]*models.Member, error) {
	members, err := l.store.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	l.metrics.SetMembers(len(members))
	total, _ := totalDebt(members).Float64()
	l.metrics.SetTotalDebt(total)
	return members, nil
}

// Member returns one member.
func (l *Ledger) Member(ctx context.Context, id string) (*models.Member, error) {
	return l.store.GetMember(ctx, id)
}

// Bills returns every bill, newest first.
func (l *Ledger) Bills(ctx context.Context) ([]*models.Bill, error) {
	bills, err := l.store.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	l.metrics.SetBills(len(bills))
	return bills, nil
}

// Bill returns one bill.
func (l *Ledger) Bill(ctx context.Context, id string) (*models.Bill, error) {
	return l.store.GetBill(ctx, id)
}

// Events returns the newest log entries first. A negative limit returns all.
func (l *Ledger) Events(ctx context.Context, limit int) ([]*models.LogEntry, error) {
	if limit == 0 {
		limit = DefaultEventLimit
	}
	return l.store.ListEntries(ctx, limit)
}

// TotalDebt returns the sum of every member's balance.
func (l *Ledger) TotalDebt(ctx context.Context) (decimal.Decimal, error) {
	members, err := l.Members(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totalDebt(members), nil
}

// Summary builds the monthly summary for the month containing at.
func (l *Ledger) Summary(ctx context.Context, at time.Time) (*notify.Summary, error) {
	members, err := l.Members(ctx)
	if err != nil {
		return nil, err
	}
	s := notify.BuildSummary(members, at.Month(), at.Year())
	return &s, nil
}

func totalDebt(members []*models.Member) decimal.Decimal {
	debts := make([]decimal.Decimal, len(members))
	for i, m := range members {
		debts[i] = m.Debt
	}
	return calculator.Total(debts)
}
