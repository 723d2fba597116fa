package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/mmynk/konta/internal/models"
)

// ListEntries returns the newest log entries first. limit <= 0 means all.
func (q *queries) ListEntries(ctx context.Context, limit int) ([]*models.LogEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := q.q.QueryContext(ctx,
		`SELECT id, kind, entity_id, amount, description, created_at
		FROM log_entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, persistenceErr("list log entries", err)
	}
	defer rows.Close()

	var entries []*models.LogEntry
	for rows.Next() {
		e := &models.LogEntry{}
		var kind string
		var createdAt int64
		if err := rows.Scan(&e.ID, &kind, &e.EntityID, &e.Amount, &e.Description, &createdAt); err != nil {
			return nil, persistenceErr("scan log entry", err)
		}
		e.Kind = models.EntryKind(kind)
		e.CreatedAt = fromUnix(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate log entries", err)
	}

	return entries, nil
}

// AppendEntry adds a row to the event log.
func (t *sqliteTx) AppendEntry(ctx context.Context, e *models.LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}

	var amount any
	if e.Amount.Valid {
		amount = e.Amount.Decimal.String()
	}

	_, err := t.q.ExecContext(ctx,
		"INSERT INTO log_entries (id, kind, entity_id, amount, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, string(e.Kind), e.EntityID, amount, e.Description, toUnix(e.CreatedAt),
	)
	if err != nil {
		return persistenceErr("append log entry", err)
	}
	return nil
}
