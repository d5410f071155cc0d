package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testURI(tb testing.TB) string {
	tb.Helper()
	return "file:" + filepath.Join(tb.TempDir(), "journal.sql")
}

func insertAccount(db Executor, address []byte, balance int64) error {
	_, err := db.Exec("insert into accounts (address, balance, updated_at, idx) values (?1, ?2, 0, 0);",
		func(stmt *Statement) {
			stmt.BindBytes(1, address)
			stmt.BindInt64(2, balance)
		}, nil)
	return err
}

func countAccounts(tb testing.TB, db Executor) int {
	tb.Helper()
	var count int
	_, err := db.Exec("select count(*) from accounts;", nil, func(stmt *Statement) bool {
		count = stmt.ColumnInt(0)
		return true
	})
	require.NoError(tb, err)
	return count
}

func TestTransactionIsolation(t *testing.T) {
	db := InMemory()

	tx, err := db.Tx(context.TODO())
	require.NoError(t, err)

	require.NoError(t, insertAccount(tx, []byte{1}, 20))
	require.Equal(t, 1, countAccounts(t, tx))
	require.NoError(t, tx.Release())

	require.Equal(t, 0, countAccounts(t, db))
}

func TestWithTx(t *testing.T) {
	db := InMemory()

	require.NoError(t, db.WithTx(context.TODO(), func(tx *Tx) error {
		return insertAccount(tx, []byte{1}, 20)
	}))
	require.Equal(t, 1, countAccounts(t, db))

	failure := errors.New("test")
	err := db.WithTx(context.TODO(), func(tx *Tx) error {
		require.NoError(t, insertAccount(tx, []byte{2}, 20))
		return failure
	})
	require.ErrorIs(t, err, failure)
	require.Equal(t, 1, countAccounts(t, db))
}

func TestObjectExists(t *testing.T) {
	db := InMemory()
	require.NoError(t, insertAccount(db, []byte{1}, 1))
	require.ErrorIs(t, insertAccount(db, []byte{1}, 2), ErrObjectExists)
}

func TestDecoderStopsIteration(t *testing.T) {
	db := InMemory()
	queries := db.QueryCount()
	for i := range 5 {
		require.NoError(t, insertAccount(db, []byte{byte(i)}, int64(i)))
	}
	var seen []int64
	rows, err := db.Exec("select balance from accounts order by balance;", nil, func(stmt *Statement) bool {
		seen = append(seen, stmt.ColumnInt64(0))
		return len(seen) < 2
	})
	require.NoError(t, err)
	require.Equal(t, 2, rows)
	require.Equal(t, []int64{0, 1}, seen)
	require.Equal(t, queries+6, db.QueryCount())
}

func TestPersistent(t *testing.T) {
	uri := testURI(t)
	db, err := Open(uri, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.NoError(t, insertAccount(db, []byte{1}, 1))
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	db, err = Open(uri)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	require.Equal(t, 1, countAccounts(t, db))
}

func TestBlob(t *testing.T) {
	db := InMemory()
	require.NoError(t, insertAccount(db, []byte{1, 2, 3}, 1))
	var blob Blob
	_, err := db.Exec("select address from accounts;", nil, func(stmt *Statement) bool {
		blob.FromColumn(stmt, 0)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, blob.Bytes)

	blob.Resize(1)
	require.Len(t, blob.Bytes, 1)
}
