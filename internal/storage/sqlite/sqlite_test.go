package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSQLiteStore_Members(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := &models.Member{Name: "Alice", Mail: "alice@example.com", Debt: dec("12.50")}
	bob := &models.Member{Name: "Bob", Debt: decimal.Zero}

	err := store.Update(ctx, func(tx storage.Tx) error {
		if err := tx.InsertMember(ctx, alice); err != nil {
			return err
		}
		return tx.InsertMember(ctx, bob)
	})
	if err != nil {
		t.Fatalf("InsertMember failed: %v", err)
	}

	t.Run("InsertMember generates ID and CreatedAt", func(t *testing.T) {
		if alice.ID == "" {
			t.Error("Expected member ID to be generated")
		}
		if alice.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetMember retrieves member", func(t *testing.T) {
		got, err := store.GetMember(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.Name != "Alice" || got.Mail != "alice@example.com" {
			t.Errorf("got %+v", got)
		}
		if !got.Debt.Equal(dec("12.5")) {
			t.Errorf("Debt = %s, want 12.5", got.Debt)
		}
		if !got.CreatedAt.Equal(alice.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, alice.CreatedAt)
		}
	})

	t.Run("ListMembers orders by creation", func(t *testing.T) {
		members, err := store.ListMembers(ctx)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}
		if members[0].ID != alice.ID || members[1].ID != bob.ID {
			t.Errorf("unexpected order: %s, %s", members[0].Name, members[1].Name)
		}
	})

	t.Run("SetDebt keeps full precision", func(t *testing.T) {
		debt := dec("33.3333333333333333")
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.SetDebt(ctx, bob.ID, debt)
		})
		if err != nil {
			t.Fatalf("SetDebt failed: %v", err)
		}
		got, _ := store.GetMember(ctx, bob.ID)
		if !got.Debt.Equal(debt) {
			t.Errorf("Debt = %s, want %s", got.Debt, debt)
		}
	})

	t.Run("UpdateMember changes name and mail", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.UpdateMember(ctx, &models.Member{ID: bob.ID, Name: "Robert", Mail: "rob@example.com"})
		})
		if err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}
		got, _ := store.GetMember(ctx, bob.ID)
		if got.Name != "Robert" || got.Mail != "rob@example.com" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("missing member returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetMember(ctx, "nonexistent-id"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetMember error = %v, want ErrNotFound", err)
		}
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.SetDebt(ctx, "nonexistent-id", decimal.Zero)
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("SetDebt error = %v, want ErrNotFound", err)
		}
		err = store.Update(ctx, func(tx storage.Tx) error {
			return tx.DeleteMember(ctx, "nonexistent-id")
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("DeleteMember error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStore_Bills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &models.Member{Name: "A"}
	b := &models.Member{Name: "B"}
	older := &models.Bill{Description: "Rent", Amount: dec("300"), MemberCount: 2, CreatedAt: time.Now().Add(-time.Hour).UTC()}
	newer := &models.Bill{Description: "Internet", Amount: dec("40"), MemberCount: 2}

	err := store.Update(ctx, func(tx storage.Tx) error {
		for _, m := range []*models.Member{a, b} {
			if err := tx.InsertMember(ctx, m); err != nil {
				return err
			}
		}
		for _, bill := range []*models.Bill{older, newer} {
			if err := tx.InsertBill(ctx, bill); err != nil {
				return err
			}
			if err := tx.AddBillMembers(ctx, bill.ID, []string{a.ID, b.ID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("ListBills returns newest first", func(t *testing.T) {
		bills, err := store.ListBills(ctx)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 2 {
			t.Fatalf("Expected 2 bills, got %d", len(bills))
		}
		if bills[0].ID != newer.ID {
			t.Errorf("Expected %q first, got %q", newer.Description, bills[0].Description)
		}
	})

	t.Run("GetBill retrieves bill", func(t *testing.T) {
		got, err := store.GetBill(ctx, older.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Description != "Rent" || !got.Amount.Equal(dec("300")) || got.MemberCount != 2 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("UpdateBill keeps member count", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.UpdateBill(ctx, &models.Bill{ID: older.ID, Description: "Rent March", Amount: dec("320"), MemberCount: 9})
		})
		if err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}
		got, _ := store.GetBill(ctx, older.ID)
		if got.Description != "Rent March" || !got.Amount.Equal(dec("320")) || got.MemberCount != 2 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("deleting a member drops it from bill members", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.DeleteMember(ctx, b.ID)
		})
		if err != nil {
			t.Fatalf("DeleteMember failed: %v", err)
		}

		var ids []string
		err = store.Update(ctx, func(tx storage.Tx) error {
			var err error
			ids, err = tx.ListBillMembers(ctx, older.ID)
			return err
		})
		if err != nil {
			t.Fatalf("ListBillMembers failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != a.ID {
			t.Errorf("bill members = %v, want [%s]", ids, a.ID)
		}
	})

	t.Run("DeleteBill removes bill", func(t *testing.T) {
		err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.DeleteBill(ctx, newer.ID)
		})
		if err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, newer.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetBill error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStore_Entries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	entries := []*models.LogEntry{
		{Kind: models.KindMemberAdded, EntityID: "m1", Description: "Added member A", CreatedAt: base},
		{Kind: models.KindPayment, EntityID: "m1", Amount: decimal.NewNullDecimal(dec("10")), Description: "A paid 10.00", CreatedAt: base.Add(time.Second)},
		{Kind: models.KindPaymentAll, Amount: decimal.NewNullDecimal(dec("5")), Description: "Everyone paid 5.00", CreatedAt: base.Add(2 * time.Second)},
	}
	err := store.Update(ctx, func(tx storage.Tx) error {
		for _, e := range entries {
			if err := tx.AppendEntry(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	t.Run("ListEntries returns newest first", func(t *testing.T) {
		got, err := store.ListEntries(ctx, 0)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(got))
		}
		if got[0].Kind != models.KindPaymentAll || got[2].Kind != models.KindMemberAdded {
			t.Errorf("unexpected order: %s, %s, %s", got[0].Kind, got[1].Kind, got[2].Kind)
		}
		if got[2].Amount.Valid {
			t.Error("Expected member_added entry to have no amount")
		}
		if !got[1].Amount.Valid || !got[1].Amount.Decimal.Equal(dec("10")) {
			t.Errorf("payment amount = %v", got[1].Amount)
		}
	})

	t.Run("ListEntries honours limit", func(t *testing.T) {
		got, err := store.ListEntries(ctx, 2)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Expected 2 entries, got %d", len(got))
		}
	})
}

func TestSQLiteStore_UpdateRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Update(ctx, func(tx storage.Tx) error {
		if err := tx.InsertMember(ctx, &models.Member{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}

	t.Run("after error", func(t *testing.T) {
		members, _ := store.ListMembers(ctx)
		if len(members) != 0 {
			t.Errorf("Expected rollback, found %d members", len(members))
		}
	})

	t.Run("after panic", func(t *testing.T) {
		func() {
			defer func() { recover() }()
			store.Update(ctx, func(tx storage.Tx) error {
				tx.InsertMember(ctx, &models.Member{Name: "Ghost"})
				panic("boom")
			})
		}()

		members, err := store.ListMembers(ctx)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 0 {
			t.Errorf("Expected rollback, found %d members", len(members))
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("admin", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByUsername", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "admin")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.ID != user.ID || got.PasswordHash != "hash" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Username != "admin" {
			t.Errorf("Username = %q, want admin", got.Username)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("admin", "other"))
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("CreateUser error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
