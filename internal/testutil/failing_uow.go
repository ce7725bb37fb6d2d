package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/jlwbr/workplanner-sub000/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call of each
// transaction, counting from 1. Reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailOnNthTxUoW wraps a real UnitOfWork and makes the Nth WithinTx call
// (counting from 1 across the UoW's lifetime) run fn and then roll back
// with Err, so work done inside that transaction never lands.
type FailOnNthTxUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	calls atomic.Int32
}

func (u *FailOnNthTxUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.calls.Add(1)
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, tx); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	if n == u.FailOn {
		_ = tx.Rollback()
		return u.Err
	}
	return tx.Commit()
}

// Calls reports how many transactions were started.
func (u *FailOnNthTxUoW) Calls() int {
	return int(u.calls.Load())
}
