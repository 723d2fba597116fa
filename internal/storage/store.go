// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
)

// Reader defines the read operations shared by the store and its transactions.
// Lookups of a missing row return an error wrapping models.ErrNotFound.
type Reader interface {
	// ListMembers returns every member ordered by creation time.
	ListMembers(ctx context.Context) ([]*models.Member, error)

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, id string) (*models.Member, error)

	// ListBills returns every bill, newest first.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// GetBill retrieves a bill by ID.
	GetBill(ctx context.Context, id string) (*models.Bill, error)

	// ListEntries returns the newest log entries first.
	// A limit of zero or less returns all of them.
	ListEntries(ctx context.Context, limit int) ([]*models.LogEntry, error)
}

// Tx is a write transaction. Everything done through a Tx becomes visible
// atomically when the surrounding Update returns nil.
type Tx interface {
	Reader

	// InsertMember persists a new member. ID and CreatedAt are assigned
	// when empty.
	InsertMember(ctx context.Context, m *models.Member) error

	// UpdateMember replaces the name and mail of an existing member.
	UpdateMember(ctx context.Context, m *models.Member) error

	// DeleteMember removes a member and its bill charges.
	DeleteMember(ctx context.Context, id string) error

	// SetDebt overwrites a member's balance.
	SetDebt(ctx context.Context, id string, debt decimal.Decimal) error

	// InsertBill persists a new bill. ID and CreatedAt are assigned when empty.
	InsertBill(ctx context.Context, b *models.Bill) error

	// UpdateBill replaces the description and amount of an existing bill.
	UpdateBill(ctx context.Context, b *models.Bill) error

	// DeleteBill removes a bill and its charge records.
	DeleteBill(ctx context.Context, id string) error

	// AddBillMembers records the members a bill was charged to.
	AddBillMembers(ctx context.Context, billID string, memberIDs []string) error

	// ListBillMembers returns the IDs of the members a bill was charged to
	// that still exist.
	ListBillMembers(ctx context.Context, billID string) ([]string, error)

	// AppendEntry adds a row to the event log.
	AppendEntry(ctx context.Context, e *models.LogEntry) error
}

// UserStore persists the administrative accounts.
type UserStore interface {
	// CreateUser inserts a new user. Fails with models.ErrValidation when the
	// username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends without changing the
// ledger or the transports.
type Store interface {
	Reader
	UserStore

	// Update runs fn inside one write transaction. The transaction commits
	// when fn returns nil and rolls back otherwise, including when fn panics.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
