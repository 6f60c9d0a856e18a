package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
)

// Querier is the subset of sqlx used by repositories.
//
// Queries are written with "?" placeholders; implementations rebind them
// for the active dialect.
type Querier interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Session is a per-request unit of work.
//
// The transaction is opened lazily by the first statement. Commit makes the
// work durable; Close rolls back anything left uncommitted and must run on
// every exit path, which the session middleware guarantees with defer.
//
// A Session is used by a single request goroutine and is not safe for
// concurrent use.
type Session struct {
	db     *sqlx.DB
	tx     *sqlx.Tx
	closed bool
}

var _ Querier = (*Session)(nil)

// ErrSessionClosed is returned by statements issued after Close.
var ErrSessionClosed = errors.New("database session is closed")

// Acquire starts a new session. No connection is taken until the first statement.
func (db *Database) Acquire() *Session {
	return &Session{db: db.DB}
}

func (s *Session) begin(ctx context.Context) (*sqlx.Tx, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "begin transaction")
	}
	s.tx = tx
	return tx, nil
}

// GetContext runs a query expected to return one row and scans it into dest.
func (s *Session) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	return tx.GetContext(ctx, dest, tx.Rebind(query), args...)
}

// SelectContext runs a query and scans every row into the slice dest.
func (s *Session) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	return tx.SelectContext(ctx, dest, tx.Rebind(query), args...)
}

// ExecContext runs a statement that returns no rows.
func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx.ExecContext(ctx, tx.Rebind(query), args...)
}

// Commit commits the open transaction, if any. Later statements open a new one.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit transaction")
	}
	return nil
}

// Close rolls back uncommitted work and releases the connection.
// It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return pkgerrors.Wrap(err, "rollback transaction")
	}
	return nil
}
