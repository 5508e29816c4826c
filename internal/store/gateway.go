// gateway.go scopes database access to a single repository call.
//
// Each call borrows one connection from the process pool and gives it back
// on every exit path, success or failure. Statements inside the call run
// strictly in sequence on that connection; result sets are drained before
// the next statement is issued.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Conn executes fn on a connection held for the duration of the call.
func (s *SQLiteStore) Conn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Tx executes fn within a transaction on a connection held for the duration
// of the call, handling Begin/Commit/Rollback automatically.
//
// The transaction lifecycle:
//  1. A connection is taken from the pool
//  2. BeginTx starts the transaction with context
//  3. If fn returns an error (or panics), the transaction is rolled back
//  4. If fn succeeds, the transaction is committed
//  5. The connection is returned to the pool
//
// For functions that need to return values, use a closure variable:
//
//	var id int64
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    res, err := tx.ExecContext(ctx, `INSERT ...`)
//	    if err != nil {
//	        return err
//	    }
//	    id, err = res.LastInsertId()
//	    return err
//	})
//	return id, err
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
