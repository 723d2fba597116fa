// Package eventlog builds and records the append-only history of
// ledger-affecting actions.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/konta/internal/models"
)

// Appender persists log entries. storage.Tx satisfies it.
type Appender interface {
	AppendEntry(ctx context.Context, e *models.LogEntry) error
}

// Publisher receives entries after the transaction that wrote them committed.
type Publisher interface {
	Publish(ctx context.Context, e *models.LogEntry) error
}

// Record stamps e with an ID and timestamp and appends it.
// Any failure is reported as models.ErrLogPersistence.
func Record(ctx context.Context, a Appender, e *models.LogEntry) error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown entry kind %q", models.ErrLogPersistence, e.Kind)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	if err := a.AppendEntry(ctx, e); err != nil {
		return fmt.Errorf("%w: %w", models.ErrLogPersistence, err)
	}
	return nil
}
