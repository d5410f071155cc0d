package accounts

import (
	"fmt"
	"time"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/sql"
)

// Record is the archived balance of an address.
type Record struct {
	types.Account
	// Index of the last transaction that changed the balance.
	Index     uint64
	UpdatedAt time.Time
}

// Update stores the balance of account after the transaction at index was applied.
func Update(db sql.Executor, account types.Account, index uint64, updatedAt time.Time) error {
	if _, err := db.Exec(`insert into accounts (address, balance, updated_at, idx)
	values (?1, ?2, ?3, ?4)
	on conflict(address) do update set balance = ?2, updated_at = ?3, idx = ?4;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
			stmt.BindInt64(2, int64(account.Balance))
			stmt.BindInt64(3, updatedAt.UnixNano())
			stmt.BindInt64(4, int64(index))
		}, nil); err != nil {
		return fmt.Errorf("update %s: %w", account.Address, err)
	}
	return nil
}

func decode(stmt *sql.Statement) Record {
	var rst Record
	stmt.ColumnBytes(0, rst.Address[:])
	rst.Balance = uint64(stmt.ColumnInt64(1))
	rst.UpdatedAt = time.Unix(0, stmt.ColumnInt64(2)).UTC()
	rst.Index = uint64(stmt.ColumnInt64(3))
	return rst
}

// Get the archived balance of address.
func Get(db sql.Executor, address types.Address) (Record, error) {
	var rst Record
	rows, err := db.Exec("select address, balance, updated_at, idx from accounts where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			rst = decode(stmt)
			return false
		})
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", address, err)
	}
	if rows == 0 {
		return Record{}, fmt.Errorf("%w: account %s", sql.ErrNotFound, address)
	}
	return rst, nil
}

// All returns archived accounts ordered by address.
func All(db sql.Executor) ([]Record, error) {
	var rst []Record
	if _, err := db.Exec("select address, balance, updated_at, idx from accounts order by address;",
		nil, func(stmt *sql.Statement) bool {
			rst = append(rst, decode(stmt))
			return true
		}); err != nil {
		return nil, fmt.Errorf("load all accounts: %w", err)
	}
	return rst, nil
}
