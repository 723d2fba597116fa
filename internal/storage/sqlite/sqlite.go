// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// Every connection of the pool gets these pragmas. Write transactions take
// the database write lock on BEGIN so concurrent writers queue on busy_timeout
// instead of failing on lock upgrade.
const dsnParams = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds the read operations, run either on the pool or inside a transaction.
type queries struct {
	q querier
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	queries
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{queries: queries{q: db}, db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return persistenceErr("ping", err)
	}
	return nil
}

// Update runs fn inside one write transaction.
func (s *SQLiteStore) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceErr("begin transaction", err)
	}
	// No-op once committed; also runs when fn panics.
	defer tx.Rollback()

	if err := fn(&sqliteTx{queries: queries{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistenceErr("commit transaction", err)
	}
	return nil
}

// sqliteTx implements storage.Tx on top of *sql.Tx.
type sqliteTx struct {
	queries
}

var _ storage.Tx = (*sqliteTx)(nil)

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", models.ErrPersistence, op, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", models.ErrNotFound, kind, id)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// expectOne maps a write that touched no row to ErrNotFound.
func expectOne(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceErr("rows affected", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
