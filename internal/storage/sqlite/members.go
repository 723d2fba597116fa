package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
)

const memberColumns = "id, name, mail, debt, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	m := &models.Member{}
	var createdAt int64
	if err := row.Scan(&m.ID, &m.Name, &m.Mail, &m.Debt, &createdAt); err != nil {
		return nil, err
	}
	m.CreatedAt = fromUnix(createdAt)
	return m, nil
}

// ListMembers returns every member ordered by creation time.
func (q *queries) ListMembers(ctx context.Context) ([]*models.Member, error) {
	rows, err := q.q.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM members ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, persistenceErr("list members", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, persistenceErr("scan member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate members", err)
	}

	return members, nil
}

// GetMember retrieves a member by ID.
func (q *queries) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m, err := scanMember(q.q.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id = ?",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("member", id)
	}
	if err != nil {
		return nil, persistenceErr("get member", err)
	}
	return m, nil
}

// InsertMember persists a new member.
func (t *sqliteTx) InsertMember(ctx context.Context, m *models.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}

	_, err := t.q.ExecContext(ctx,
		"INSERT INTO members (id, name, mail, debt, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.Name, m.Mail, m.Debt.String(), toUnix(m.CreatedAt),
	)
	if err != nil {
		return persistenceErr("insert member", err)
	}
	return nil
}

// UpdateMember replaces the name and mail of a member.
func (t *sqliteTx) UpdateMember(ctx context.Context, m *models.Member) error {
	res, err := t.q.ExecContext(ctx,
		"UPDATE members SET name = ?, mail = ? WHERE id = ?",
		m.Name, m.Mail, m.ID,
	)
	if err != nil {
		return persistenceErr("update member", err)
	}
	return expectOne(res, "member", m.ID)
}

// DeleteMember removes a member. Its bill_members rows go with it.
func (t *sqliteTx) DeleteMember(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return persistenceErr("delete member", err)
	}
	return expectOne(res, "member", id)
}

// SetDebt overwrites a member's balance.
func (t *sqliteTx) SetDebt(ctx context.Context, id string, debt decimal.Decimal) error {
	res, err := t.q.ExecContext(ctx,
		"UPDATE members SET debt = ? WHERE id = ?",
		debt.String(), id,
	)
	if err != nil {
		return persistenceErr("set debt", err)
	}
	return expectOne(res, "member", id)
}
