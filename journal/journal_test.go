package journal

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/ledger"
	"github.com/spacemeshos/go-ledger/signing"
	"github.com/spacemeshos/go-ledger/sql"
	"github.com/spacemeshos/go-ledger/sql/accounts"
	"github.com/spacemeshos/go-ledger/sql/transactions"
)

func TestRecord(t *testing.T) {
	db := sql.InMemory()
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0).UTC())
	j := New(db, WithLogger(zaptest.NewLogger(t)), WithClock(clock))

	signer, err := signing.NewEdSigner()
	require.NoError(t, err)
	to := types.Address{1}
	tx := signer.SignTx(types.TxContents{Type: types.TxSend, From: signer.Address(), To: &to, Amount: 5})
	receipt := &types.Receipt{
		Index: 0,
		Tx:    tx,
		Accounts: []types.Account{
			{Address: signer.Address(), Balance: 95},
			{Address: to, Balance: 5},
		},
	}
	require.NoError(t, j.Record(context.Background(), receipt))

	record, err := transactions.Get(db, tx.ID())
	require.NoError(t, err)
	require.Equal(t, tx, record.Tx)
	require.Equal(t, clock.Now(), record.AppliedAt)

	for _, account := range receipt.Accounts {
		got, err := accounts.Get(db, account.Address)
		require.NoError(t, err)
		require.Equal(t, account, got.Account)
		require.Equal(t, clock.Now(), got.UpdatedAt)
	}

	next, err := j.Next()
	require.NoError(t, err)
	require.EqualValues(t, 1, next)

	t.Run("atomic", func(t *testing.T) {
		clock.Advance(time.Second)
		// index is taken, balances must not be updated
		receipt := &types.Receipt{
			Index:    0,
			Tx:       signer.SignTx(types.TxContents{Type: types.TxMint, From: signer.Address(), Amount: 1}),
			Accounts: []types.Account{{Address: signer.Address(), Balance: 96}},
		}
		require.ErrorIs(t, j.Record(context.Background(), receipt), sql.ErrObjectExists)

		got, err := accounts.Get(db, signer.Address())
		require.NoError(t, err)
		require.EqualValues(t, 95, got.Balance)
	})
}

func TestLedgerJournal(t *testing.T) {
	db := sql.InMemory()
	issuer, err := signing.NewEdSigner()
	require.NoError(t, err)
	engine := ledger.New(issuer.Address(), signing.NewEdVerifier(),
		ledger.WithLogger(zaptest.NewLogger(t)),
		ledger.WithJournal(New(db, WithClock(clockwork.NewFakeClock()))),
	)

	to := types.Address{7}
	for _, contents := range []types.TxContents{
		{Type: types.TxSend, From: issuer.Address(), To: &to, Amount: 500},
		{Type: types.TxSend, From: issuer.Address(), To: &to, Amount: 2_000_000},
		{Type: types.TxCheck, From: issuer.Address()},
		{Type: types.TxMint, From: issuer.Address(), Amount: 10},
	} {
		engine.Submit(issuer.SignTx(contents))
	}

	count, err := transactions.Count(db)
	require.NoError(t, err)
	require.EqualValues(t, engine.HistoryLen(), count)

	archived, err := accounts.All(db)
	require.NoError(t, err)
	require.Len(t, archived, 2)
	for _, record := range archived {
		balance, exists := engine.Balance(record.Address)
		require.True(t, exists)
		require.Equal(t, balance, record.Balance)
	}

	var history []*types.Transaction
	require.NoError(t, transactions.IterateFrom(db, 0, func(r *transactions.Record) bool {
		history = append(history, r.Tx)
		return true
	}))
	require.Equal(t, engine.History(), history)
}

func TestLedgerJournalRepeatedTransaction(t *testing.T) {
	db := sql.InMemory()
	issuer, err := signing.NewEdSigner()
	require.NoError(t, err)
	engine := ledger.New(issuer.Address(), signing.NewEdVerifier(),
		ledger.WithLogger(zaptest.NewLogger(t)),
		ledger.WithJournal(New(db, WithClock(clockwork.NewFakeClock()))),
	)

	to := types.Address{7}
	tx := issuer.SignTx(types.TxContents{Type: types.TxSend, From: issuer.Address(), To: &to, Amount: 500})
	for i := range 2 {
		rst, err := engine.Submit(tx)
		require.NoError(t, err)
		require.Equal(t, ledger.StatusApplied, rst.Status)
		require.EqualValues(t, i, rst.Index)
		require.Equal(t, tx.ID(), rst.ID)
	}

	count, err := transactions.Count(db)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	var indexes []uint64
	require.NoError(t, transactions.IterateFrom(db, 0, func(r *transactions.Record) bool {
		require.Equal(t, tx, r.Tx)
		indexes = append(indexes, r.Index)
		return true
	}))
	require.Equal(t, []uint64{0, 1}, indexes)

	first, err := transactions.Get(db, tx.ID())
	require.NoError(t, err)
	require.EqualValues(t, 0, first.Index)

	received, err := accounts.Get(db, to)
	require.NoError(t, err)
	require.EqualValues(t, 1_000, received.Balance)
	require.EqualValues(t, 1, received.Index)
}
