package transactions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/signing"
	"github.com/spacemeshos/go-ledger/sql"
)

func createTX(tb testing.TB, signer *signing.EdSigner, typ types.TxType, to *types.Address, amount uint64) *types.Transaction {
	tb.Helper()
	return signer.SignTx(types.TxContents{Type: typ, From: signer.Address(), To: to, Amount: amount})
}

func newSigner(tb testing.TB) *signing.EdSigner {
	tb.Helper()
	signer, err := signing.NewEdSigner()
	require.NoError(tb, err)
	return signer
}

func TestAddGet(t *testing.T) {
	db := sql.InMemory()
	signer := newSigner(t)
	to := types.Address{1}
	now := time.Unix(0, 1_700_000_000_123).UTC()

	tx := createTX(t, signer, types.TxSend, &to, 10)
	require.NoError(t, Add(db, 0, tx, now))

	got, err := Get(db, tx.ID())
	require.NoError(t, err)
	require.Equal(t, &Record{Index: 0, Tx: tx, AppliedAt: now}, got)

	has, err := Has(db, tx.ID())
	require.NoError(t, err)
	require.True(t, has)

	// identical transaction applied again
	require.NoError(t, Add(db, 1, tx, now.Add(time.Second)))
	got, err = Get(db, tx.ID())
	require.NoError(t, err)
	require.EqualValues(t, 0, got.Index)
	count, err := Count(db)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.ErrorIs(t, Add(db, 0, createTX(t, signer, types.TxMint, nil, 1), now), sql.ErrObjectExists)

	_, err = Get(db, types.TransactionID{1})
	require.ErrorIs(t, err, sql.ErrNotFound)
	has, err = Has(db, types.TransactionID{1})
	require.NoError(t, err)
	require.False(t, has)
}

func TestIterate(t *testing.T) {
	db := sql.InMemory()
	issuer := newSigner(t)
	other := newSigner(t)
	to := other.Address()

	var txs []*types.Transaction
	for i := range 6 {
		var tx *types.Transaction
		if i%2 == 0 {
			tx = createTX(t, issuer, types.TxMint, nil, uint64(i))
		} else {
			tx = createTX(t, issuer, types.TxSend, &to, uint64(i))
		}
		require.NoError(t, Add(db, uint64(i), tx, time.Unix(int64(i), 0)))
		txs = append(txs, tx)
	}

	count, err := Count(db)
	require.NoError(t, err)
	require.EqualValues(t, 6, count)

	t.Run("from", func(t *testing.T) {
		var got []*types.Transaction
		require.NoError(t, IterateFrom(db, 2, func(r *Record) bool {
			require.EqualValues(t, len(got)+2, r.Index)
			got = append(got, r.Tx)
			return true
		}))
		require.Equal(t, txs[2:], got)
	})
	t.Run("stop", func(t *testing.T) {
		calls := 0
		require.NoError(t, IterateFrom(db, 0, func(*Record) bool {
			calls++
			return false
		}))
		require.Equal(t, 1, calls)
	})
	t.Run("by address", func(t *testing.T) {
		var indexes []uint64
		require.NoError(t, IterateByAddress(db, other.Address(), func(r *Record) bool {
			indexes = append(indexes, r.Index)
			return true
		}))
		require.Equal(t, []uint64{1, 3, 5}, indexes)

		indexes = nil
		require.NoError(t, IterateByAddress(db, issuer.Address(), func(r *Record) bool {
			indexes = append(indexes, r.Index)
			return true
		}))
		require.Len(t, indexes, 6)
	})
}
