package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB returns a file-backed SQLite database with a single counter table.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tx.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE items (name TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countItems(t *testing.T, db *sql.DB) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func insertItem(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('x')`)
	return err
}

func TestRunInTransaction_Success(t *testing.T) {
	db := openTestDB(t)

	err := RunInTransaction(context.Background(), db, insertItem)

	require.NoError(t, err)
	assert.Equal(t, 1, countItems(t, db))
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	db := openTestDB(t)
	expectedErr := errors.New("function error")

	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		if err := insertItem(ctx, tx); err != nil {
			return err
		}
		return expectedErr
	})

	assert.ErrorIs(t, err, expectedErr)
	assert.Same(t, expectedErr, err, "function errors are returned unchanged")
	assert.Equal(t, 0, countItems(t, db), "insert should be rolled back")
}

type failingBeginner struct{ err error }

func (f failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, f.err
}

func TestRunInTransaction_BeginTransactionError(t *testing.T) {
	beginErr := errors.New("begin error")
	called := false

	err := RunInTransaction(context.Background(), failingBeginner{err: beginErr}, func(context.Context, *sql.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called, "function should not be called when begin fails")
}

func TestRunInTransaction_CommitError(t *testing.T) {
	db := openTestDB(t)

	// Committing a transaction that fn already committed fails with ErrTxDone.
	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		if err := insertItem(ctx, tx); err != nil {
			return err
		}
		return tx.Commit()
	})

	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.Contains(t, err.Error(), "failed to commit transaction")
}

func TestRunInTransaction_RollbackError(t *testing.T) {
	db := openTestDB(t)
	fnErr := errors.New("function error")

	err := RunInTransaction(context.Background(), db, func(_ context.Context, tx *sql.Tx) error {
		require.NoError(t, tx.Rollback())
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "rollback failed")
}

func TestRunInTransaction_Panic(t *testing.T) {
	db := openTestDB(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			if err := insertItem(ctx, tx); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.Equal(t, 0, countItems(t, db), "insert should be rolled back after panic")
}
