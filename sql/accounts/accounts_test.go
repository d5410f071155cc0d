package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/sql"
)

func TestUpdate(t *testing.T) {
	db := sql.InMemory()
	address := types.Address{1}
	first := time.Unix(10, 0).UTC()

	_, err := Get(db, address)
	require.ErrorIs(t, err, sql.ErrNotFound)

	require.NoError(t, Update(db, types.Account{Address: address, Balance: 100}, 3, first))
	got, err := Get(db, address)
	require.NoError(t, err)
	require.Equal(t, Record{
		Account:   types.Account{Address: address, Balance: 100},
		Index:     3,
		UpdatedAt: first,
	}, got)

	second := first.Add(time.Second)
	require.NoError(t, Update(db, types.Account{Address: address, Balance: 7}, 4, second))
	got, err = Get(db, address)
	require.NoError(t, err)
	require.EqualValues(t, 7, got.Balance)
	require.EqualValues(t, 4, got.Index)
	require.Equal(t, second, got.UpdatedAt)
}

func TestAll(t *testing.T) {
	db := sql.InMemory()
	all, err := All(db)
	require.NoError(t, err)
	require.Empty(t, all)

	for _, b := range []byte{3, 1, 2} {
		require.NoError(t, Update(db, types.Account{Address: types.Address{b}, Balance: uint64(b)}, 0, time.Time{}))
	}
	all, err = All(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, record := range all {
		require.Equal(t, types.Address{byte(i + 1)}, record.Address)
		require.EqualValues(t, i+1, record.Balance)
	}
}
