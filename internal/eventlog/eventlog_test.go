package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
)

type fakeAppender struct {
	entries []*models.LogEntry
	err     error
}

func (f *fakeAppender) AppendEntry(_ context.Context, e *models.LogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps and appends", func(t *testing.T) {
		a := &fakeAppender{}
		e := PaymentAll(decimal.NewFromInt(5))
		if err := Record(ctx, a, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if len(a.entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(a.entries))
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Errorf("Expected ID and CreatedAt to be set, got %+v", e)
		}
	})

	t.Run("append failure is a log persistence error", func(t *testing.T) {
		a := &fakeAppender{err: models.ErrPersistence}
		err := Record(ctx, a, PaymentAll(decimal.NewFromInt(5)))
		if !errors.Is(err, models.ErrLogPersistence) {
			t.Errorf("error = %v, want ErrLogPersistence", err)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		a := &fakeAppender{}
		err := Record(ctx, a, &models.LogEntry{Kind: "bogus"})
		if !errors.Is(err, models.ErrLogPersistence) {
			t.Errorf("error = %v, want ErrLogPersistence", err)
		}
		if len(a.entries) != 0 {
			t.Error("Expected nothing appended")
		}
	})
}

func TestEntryDescriptions(t *testing.T) {
	alice := &models.Member{ID: "m1", Name: "Alice", Debt: decimal.RequireFromString("12.345")}
	rent := &models.Bill{ID: "b1", Description: "Rent", Amount: decimal.NewFromInt(150)}

	tests := []struct {
		name       string
		entry      *models.LogEntry
		wantKind   models.EntryKind
		wantEntity string
		wantDesc   string
		wantAmount string
	}{
		{
			name:       "payment",
			entry:      Payment(alice, decimal.RequireFromString("40")),
			wantKind:   models.KindPayment,
			wantEntity: "m1",
			wantDesc:   "Alice paid 40.00",
			wantAmount: "40",
		},
		{
			name:       "payment all",
			entry:      PaymentAll(decimal.RequireFromString("7.5")),
			wantKind:   models.KindPaymentAll,
			wantDesc:   "Everyone paid 7.50",
			wantAmount: "7.5",
		},
		{
			name:       "bill added",
			entry:      BillAdded(rent),
			wantKind:   models.KindBillAdded,
			wantEntity: "b1",
			wantDesc:   "Added bill Rent of 150.00",
			wantAmount: "150",
		},
		{
			name:       "bill updated",
			entry:      BillUpdated(rent, decimal.NewFromInt(100)),
			wantKind:   models.KindBillUpdated,
			wantEntity: "b1",
			wantDesc:   "Updated bill Rent of 150.00 (was 100.00)",
			wantAmount: "150",
		},
		{
			name:       "bill deleted",
			entry:      BillDeleted(rent),
			wantKind:   models.KindBillDeleted,
			wantEntity: "b1",
			wantDesc:   "Deleted bill Rent of 150.00",
			wantAmount: "150",
		},
		{
			name:       "member added",
			entry:      MemberAdded(alice),
			wantKind:   models.KindMemberAdded,
			wantEntity: "m1",
			wantDesc:   "Added member Alice",
			wantAmount: "12.345",
		},
		{
			name:       "member updated",
			entry:      MemberUpdated(alice),
			wantKind:   models.KindMemberUpdated,
			wantEntity: "m1",
			wantDesc:   "Updated member Alice",
		},
		{
			name:       "member deleted",
			entry:      MemberDeleted(alice),
			wantKind:   models.KindMemberDeleted,
			wantEntity: "m1",
			wantDesc:   "Deleted member Alice",
			wantAmount: "12.345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.entry.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", tt.entry.Kind, tt.wantKind)
			}
			if tt.entry.EntityID != tt.wantEntity {
				t.Errorf("EntityID = %q, want %q", tt.entry.EntityID, tt.wantEntity)
			}
			if tt.entry.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", tt.entry.Description, tt.wantDesc)
			}
			if tt.wantAmount == "" {
				if tt.entry.Amount.Valid {
					t.Errorf("Amount = %s, want none", tt.entry.Amount.Decimal)
				}
				return
			}
			if !tt.entry.Amount.Valid || !tt.entry.Amount.Decimal.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("Amount = %v, want %s", tt.entry.Amount, tt.wantAmount)
			}
		})
	}
}

func TestMemberAddedWithoutInitialDebt(t *testing.T) {
	e := MemberAdded(&models.Member{ID: "m2", Name: "Bob"})
	if e.Amount.Valid {
		t.Errorf("Expected no amount, got %s", e.Amount.Decimal)
	}
}
