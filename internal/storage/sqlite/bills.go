package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mmynk/konta/internal/models"
)

const billColumns = "id, description, amount, member_count, created_at"

func scanBill(row rowScanner) (*models.Bill, error) {
	b := &models.Bill{}
	var createdAt int64
	if err := row.Scan(&b.ID, &b.Description, &b.Amount, &b.MemberCount, &createdAt); err != nil {
		return nil, err
	}
	b.CreatedAt = fromUnix(createdAt)
	return b, nil
}

// ListBills returns every bill, newest first.
func (q *queries) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := q.q.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, persistenceErr("list bills", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, persistenceErr("scan bill", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate bills", err)
	}

	return bills, nil
}

// GetBill retrieves a bill by ID.
func (q *queries) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	b, err := scanBill(q.q.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("bill", id)
	}
	if err != nil {
		return nil, persistenceErr("get bill", err)
	}
	return b, nil
}

// InsertBill persists a new bill.
func (t *sqliteTx) InsertBill(ctx context.Context, b *models.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now()
	}

	_, err := t.q.ExecContext(ctx,
		"INSERT INTO bills (id, description, amount, member_count, created_at) VALUES (?, ?, ?, ?, ?)",
		b.ID, b.Description, b.Amount.String(), b.MemberCount, toUnix(b.CreatedAt),
	)
	if err != nil {
		return persistenceErr("insert bill", err)
	}
	return nil
}

// UpdateBill replaces the description and amount of a bill.
// The member count is fixed at creation.
func (t *sqliteTx) UpdateBill(ctx context.Context, b *models.Bill) error {
	res, err := t.q.ExecContext(ctx,
		"UPDATE bills SET description = ?, amount = ? WHERE id = ?",
		b.Description, b.Amount.String(), b.ID,
	)
	if err != nil {
		return persistenceErr("update bill", err)
	}
	return expectOne(res, "bill", b.ID)
}

// DeleteBill removes a bill. Its bill_members rows go with it.
func (t *sqliteTx) DeleteBill(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return persistenceErr("delete bill", err)
	}
	return expectOne(res, "bill", id)
}

// AddBillMembers records the members a bill was charged to.
func (t *sqliteTx) AddBillMembers(ctx context.Context, billID string, memberIDs []string) error {
	for _, memberID := range memberIDs {
		_, err := t.q.ExecContext(ctx,
			"INSERT INTO bill_members (bill_id, member_id) VALUES (?, ?)",
			billID, memberID,
		)
		if err != nil {
			return persistenceErr("insert bill member", err)
		}
	}
	return nil
}

// ListBillMembers returns the surviving members a bill was charged to.
func (t *sqliteTx) ListBillMembers(ctx context.Context, billID string) ([]string, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT bm.member_id
		FROM bill_members bm
		JOIN members m ON m.id = bm.member_id
		WHERE bm.bill_id = ?
		ORDER BY m.created_at, m.rowid`,
		billID,
	)
	if err != nil {
		return nil, persistenceErr("list bill members", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, persistenceErr("scan bill member", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate bill members", err)
	}

	return ids, nil
}
