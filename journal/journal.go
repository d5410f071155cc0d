// Package journal archives applied ledger transactions to sqlite.
//
// The archive is write only from the point of view of the ledger. The engine state
// is never restored from it.
package journal

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/sql"
	"github.com/spacemeshos/go-ledger/sql/accounts"
	"github.com/spacemeshos/go-ledger/sql/transactions"
)

// Opt for configuring Journal.
type Opt func(*Journal)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(j *Journal) {
		j.logger = logger
	}
}

// WithClock sets the clock used to timestamp records.
func WithClock(clock clockwork.Clock) Opt {
	return func(j *Journal) {
		j.clock = clock
	}
}

// Journal writes receipts of applied transactions.
type Journal struct {
	logger *zap.Logger
	clock  clockwork.Clock
	db     *sql.Database
}

// New creates a journal on top of db.
func New(db *sql.Database, opts ...Opt) *Journal {
	j := &Journal{
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		db:     db,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Record writes the transaction together with the balances it touched in one database transaction.
func (j *Journal) Record(ctx context.Context, receipt *types.Receipt) error {
	now := j.clock.Now()
	if err := j.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := transactions.Add(tx, receipt.Index, receipt.Tx, now); err != nil {
			return err
		}
		for _, account := range receipt.Accounts {
			if err := accounts.Update(tx, account, receipt.Index, now); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("record %d: %w", receipt.Index, err)
	}
	j.logger.Debug("recorded transaction", zap.Object("receipt", receipt))
	return nil
}

// Next returns the history index that the next recorded transaction is expected to have.
// It is used to refuse archiving two ledgers into the same database.
func (j *Journal) Next() (uint64, error) {
	return transactions.Count(j.db)
}
