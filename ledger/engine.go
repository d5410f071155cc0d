// Package ledger applies signed transactions to the balances owned by a single issuer.
package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-ledger/common/types"
)

// DefaultInitialBalance is credited to the issuer when the engine is created.
const DefaultInitialBalance uint64 = 1_000_000

// Opt for configuring Engine.
type Opt func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(logger *zap.Logger) Opt {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithInitialBalance overwrites DefaultInitialBalance.
func WithInitialBalance(balance uint64) Opt {
	return func(e *Engine) {
		e.initial = balance
	}
}

// WithJournal archives every applied transaction.
func WithJournal(journal Journal) Opt {
	return func(e *Engine) {
		e.journal = journal
	}
}

// Engine is the only writer of the ledger state.
type Engine struct {
	logger   *zap.Logger
	issuer   types.Address
	verifier verifier
	journal  Journal
	initial  uint64

	mu    sync.Mutex
	state *state
}

// New creates an engine where issuer holds the initial balance and is the only one allowed to mint.
func New(issuer types.Address, verifier verifier, opts ...Opt) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		issuer:   issuer,
		verifier: verifier,
		initial:  DefaultInitialBalance,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = newState(issuer, e.initial)
	reportState(e.state)
	e.logger.Info("ledger created",
		zap.Stringer("issuer", issuer),
		zap.Uint64("balance", e.initial),
	)
	return e
}

// Submit validates tx and applies it if every check passed.
//
// The error is nil if the transaction was applied or answered as a query, otherwise
// it wraps one of the package errors and the state is unchanged except for accounts
// that were created for previously unknown addresses.
func (e *Engine) Submit(tx *types.Transaction) (Result, error) {
	start := time.Now()
	if tx == nil {
		submitted.WithLabelValues("none", string(ReasonMalformed)).Inc()
		return Result{Status: StatusRejected, Reason: ReasonMalformed}, ErrMalformed
	}
	tx = cloneTx(tx)

	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.submit(tx)
	typ := typeLabel(tx.Contents.Type)
	submitted.WithLabelValues(typ, string(res.Reason)).Inc()
	submitDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
	reportState(e.state)
	return res, err
}

func (e *Engine) submit(tx *types.Transaction) (Result, error) {
	res := Result{ID: tx.ID(), Type: tx.Contents.Type}

	// every step runs even if the one before failed
	sigErr := checkSignature(e.verifier, tx)
	if created := bootstrap(e.state, &tx.Contents); len(created) > 0 {
		e.logger.Debug("created accounts",
			zap.Stringer("tx", res.ID),
			zap.Stringers("addresses", created),
		)
	}
	v := checkType(e.state, e.issuer, &tx.Contents)

	var err error
	switch {
	case sigErr != nil:
		err = sigErr
	case v.err != nil:
		err = v.err
	case v.query:
		res.Status = StatusQueried
		res.Reason = ReasonQueryOnly
		res.Balance = v.balance
		return res, nil
	}
	if err != nil {
		res.Status = StatusRejected
		res.Reason = reasonOf(err)
		e.logger.Debug("transaction rejected",
			zap.Object("tx", tx),
			zap.Error(err),
		)
		return res, err
	}

	index, accounts := apply(e.state, tx)
	res.Status = StatusApplied
	res.Reason = ReasonApplied
	res.Index = index
	res.Balance = accounts[0].Balance
	e.logger.Debug("transaction applied", zap.Object("result", &res))

	if e.journal != nil {
		receipt := &types.Receipt{Index: index, Tx: tx, Accounts: accounts}
		if err := e.journal.Record(context.Background(), receipt); err != nil {
			journalFailures.Inc()
			e.logger.Error("failed to archive transaction",
				zap.Object("receipt", receipt),
				zap.Error(err),
			)
		}
	}
	return res, nil
}

// Issuer returns the address that is allowed to mint.
func (e *Engine) Issuer() types.Address {
	return e.issuer
}

// Balance returns the balance of address and false if the ledger never saw it.
func (e *Engine) Balance(address types.Address) (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	account, ok := e.state.get(address)
	if !ok {
		return 0, false
	}
	return account.Balance, true
}

// Has returns true if an account exists for address.
func (e *Engine) Has(address types.Address) bool {
	_, ok := e.Balance(address)
	return ok
}

// Accounts returns a copy of all accounts ordered by address.
func (e *Engine) Accounts() []types.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.snapshot()
}

// History returns applied transactions in the order they were applied.
func (e *Engine) History() []*types.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	rst := make([]*types.Transaction, 0, len(e.state.history))
	for _, tx := range e.state.history {
		rst = append(rst, cloneTx(tx))
	}
	return rst
}

// HistoryLen returns the number of applied transactions.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.state.history)
}

// TotalSupply is the sum of all balances.
func (e *Engine) TotalSupply() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.supply
}

func typeLabel(typ types.TxType) string {
	if !typ.Known() {
		return "unknown"
	}
	return typ.String()
}
