package transactions

import (
	"fmt"
	"time"

	"github.com/spacemeshos/go-ledger/codec"
	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/sql"
)

// Record is an archived transaction.
type Record struct {
	Index     uint64
	Tx        *types.Transaction
	AppliedAt time.Time
}

const fields = "idx, tx, applied_at"

// Add archives transaction that was applied at position index of the ledger history.
func Add(db sql.Executor, index uint64, tx *types.Transaction, appliedAt time.Time) error {
	buf, err := codec.Encode(tx)
	if err != nil {
		return fmt.Errorf("encode %s: %w", tx.ID(), err)
	}
	if _, err := db.Exec(`insert into transactions
	(idx, id, type, principal, destination, amount, tx, applied_at)
	values (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8);`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
			stmt.BindBytes(2, tx.ID().Bytes())
			stmt.BindInt64(3, int64(tx.Contents.Type))
			stmt.BindBytes(4, tx.Contents.From.Bytes())
			if tx.Contents.To != nil {
				stmt.BindBytes(5, tx.Contents.To.Bytes())
			} else {
				stmt.BindNull(5)
			}
			stmt.BindInt64(6, int64(tx.Contents.Amount))
			stmt.BindBytes(7, buf)
			stmt.BindInt64(8, appliedAt.UnixNano())
		}, nil); err != nil {
		return fmt.Errorf("insert %s: %w", tx.ID(), err)
	}
	return nil
}

func decodeRecord(stmt *sql.Statement) (*Record, error) {
	var blob sql.Blob
	blob.FromColumn(stmt, 1)
	tx, err := types.BytesToTransaction(blob.Bytes)
	if err != nil {
		return nil, err
	}
	return &Record{
		Index:     uint64(stmt.ColumnInt64(0)),
		Tx:        tx,
		AppliedAt: time.Unix(0, stmt.ColumnInt64(2)).UTC(),
	}, nil
}

// Get returns the first application of the transaction with id.
// Identical transactions may be applied more than once, use IterateFrom to see all of them.
func Get(db sql.Executor, id types.TransactionID) (*Record, error) {
	var (
		rst  *Record
		derr error
	)
	rows, err := db.Exec("select "+fields+" from transactions where id = ?1 order by idx limit 1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
		}, func(stmt *sql.Statement) bool {
			rst, derr = decodeRecord(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: tx %s", sql.ErrNotFound, id)
	}
	if derr != nil {
		return nil, fmt.Errorf("get %s: %w", id, derr)
	}
	return rst, nil
}

// Has returns true if transaction with id was archived.
func Has(db sql.Executor, id types.TransactionID) (bool, error) {
	rows, err := db.Exec("select 1 from transactions where id = ?1 limit 1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, id.Bytes())
		}, nil)
	if err != nil {
		return false, fmt.Errorf("has %s: %w", id, err)
	}
	return rows > 0, nil
}

// Count returns the number of archived transactions.
func Count(db sql.Executor) (uint64, error) {
	var count uint64
	if _, err := db.Exec("select count(*) from transactions;", nil, func(stmt *sql.Statement) bool {
		count = uint64(stmt.ColumnInt64(0))
		return false
	}); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// IterateFrom calls fn for transactions starting from index in the order they were applied.
// Iteration stops when fn returns false.
func IterateFrom(db sql.Executor, from uint64, fn func(*Record) bool) error {
	return iterate(db, "select "+fields+" from transactions where idx >= ?1 order by idx;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(from))
		}, fn)
}

// IterateByAddress calls fn for transactions that were sent or received by address.
func IterateByAddress(db sql.Executor, address types.Address, fn func(*Record) bool) error {
	return iterate(db, "select "+fields+
		" from transactions where principal = ?1 or destination = ?1 order by idx;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, fn)
}

func iterate(db sql.Executor, query string, enc sql.Encoder, fn func(*Record) bool) error {
	var derr error
	if _, err := db.Exec(query, enc, func(stmt *sql.Statement) bool {
		var record *Record
		record, derr = decodeRecord(stmt)
		if derr != nil {
			return false
		}
		return fn(record)
	}); err != nil {
		return fmt.Errorf("iterate transactions: %w", err)
	}
	if derr != nil {
		return fmt.Errorf("iterate transactions: %w", derr)
	}
	return nil
}
