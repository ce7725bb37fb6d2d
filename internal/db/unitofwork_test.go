package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertChannel(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO channels (id, name, created_at, updated_at) VALUES (?, ?, 'now', 'now')`, id, "channel "+id)
	return err
}

func channelCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM channels`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertChannel(ctx, tx, "c1"); err != nil {
			return err
		}
		return insertChannel(ctx, tx, "c2")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, channelCount(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := newUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertChannel(ctx, tx, "c1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, channelCount(t, database), "insert should be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := newUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertChannel(ctx, tx, "c1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, channelCount(t, database))
}

func TestWithinTx_CancelledContext(t *testing.T) {
	database, uow := newUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, 0, channelCount(t, database))
}
