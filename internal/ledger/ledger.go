// Package ledger applies household ledger operations to storage.
//
// Every mutating operation validates its input, then runs in one storage
// transaction that computes allocation deltas, writes the new balances and
// appends exactly one event log entry. Either all of it commits or none of
// it does. Committed entries are handed to an optional publisher.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/konta/internal/eventlog"
	"github.com/mmynk/konta/internal/metrics"
	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/storage"
)

// Operation names used in logs and metrics.
const (
	OpAddMember    = "add_member"
	OpUpdateMember = "update_member"
	OpRemoveMember = "remove_member"
	OpPay          = "pay"
	OpPayAll       = "pay_all"
	OpAddBill      = "add_bill"
	OpUpdateBill   = "update_bill"
	OpDeleteBill   = "delete_bill"
)

// Ledger orchestrates ledger operations over a storage.Store.
type Ledger struct {
	store     storage.Store
	publisher eventlog.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher hands every committed log entry to p.
func WithPublisher(p eventlog.Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithMetrics records operation counts and latency in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates a Ledger backed by store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// mutate runs fn in one write transaction and records the entry it returns.
func (l *Ledger) mutate(ctx context.Context, op string, fn func(tx storage.Tx) (*models.LogEntry, error)) error {
	start := time.Now()

	var entry *models.LogEntry
	err := l.store.Update(ctx, func(tx storage.Tx) error {
		e, err := fn(tx)
		if err != nil {
			return err
		}
		entry = e
		return eventlog.Record(ctx, tx, e)
	})
	if err != nil {
		return l.fail(ctx, op, start, err)
	}

	l.metrics.ObserveOperation(op, start, nil)
	l.logger.InfoContext(ctx, "Ledger updated",
		"operation", op,
		"kind", entry.Kind,
		"entity_id", entry.EntityID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	l.publish(ctx, entry)
	return nil
}

// fail records a failed operation and wraps err with the operation name.
func (l *Ledger) fail(ctx context.Context, op string, start time.Time, err error) error {
	l.metrics.ObserveOperation(op, start, err)

	if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrDivisionUndefined) {
		l.logger.WarnContext(ctx, "Ledger operation rejected", "operation", op, "error", err)
	} else {
		l.logger.ErrorContext(ctx, "Ledger operation failed", "operation", op, "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (l *Ledger) publish(ctx context.Context, e *models.LogEntry) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, e); err != nil {
		// The change is committed; fan-out is best effort.
		l.logger.ErrorContext(ctx, "Failed to publish log entry",
			"entry_id", e.ID, "kind", e.Kind, "error", err)
	}
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, fmt.Sprintf(format, args...))
}
