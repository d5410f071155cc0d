package ledger

import (
	"fmt"
	"math"
	"slices"

	"github.com/spacemeshos/go-ledger/common/types"
)

// state is owned by the engine and passed by pointer through the pipeline.
// It must only be touched while holding the engine lock.
type state struct {
	accounts map[types.Address]*types.Account
	history  []*types.Transaction
	// supply is the sum of all balances. Mint is rejected if it would overflow,
	// which keeps every single balance below the overflow limit as well.
	supply uint64
}

func newState(issuer types.Address, balance uint64) *state {
	return &state{
		accounts: map[types.Address]*types.Account{
			issuer: {Address: issuer, Balance: balance},
		},
		supply: balance,
	}
}

func (s *state) get(address types.Address) (*types.Account, bool) {
	account, ok := s.accounts[address]
	return account, ok
}

// mustGet loads an account that the bootstrap step must have created.
func (s *state) mustGet(address types.Address) *types.Account {
	account, ok := s.accounts[address]
	if !ok {
		panic(fmt.Sprintf("BUG: account %s is not bootstrapped", address))
	}
	return account
}

// ensure creates an empty account for address and reports if it was created.
func (s *state) ensure(address types.Address) bool {
	if _, ok := s.accounts[address]; ok {
		return false
	}
	s.accounts[address] = &types.Account{Address: address}
	return true
}

func (s *state) transfer(from, to types.Address, amount uint64) {
	sender := s.mustGet(from)
	recipient := s.mustGet(to)
	if sender.Balance < amount {
		panic(fmt.Sprintf("BUG: transfer of %d from %s with balance %d", amount, from, sender.Balance))
	}
	sender.Balance -= amount
	recipient.Balance += amount
}

func (s *state) mint(to types.Address, amount uint64) {
	if s.supply > math.MaxUint64-amount {
		panic(fmt.Sprintf("BUG: mint of %d overflows supply %d", amount, s.supply))
	}
	s.mustGet(to).Balance += amount
	s.supply += amount
}

func (s *state) canMint(amount uint64) bool {
	return s.supply <= math.MaxUint64-amount
}

func (s *state) appendTx(tx *types.Transaction) uint64 {
	s.history = append(s.history, tx)
	return uint64(len(s.history) - 1)
}

func (s *state) snapshot() []types.Account {
	rst := make([]types.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		rst = append(rst, *account)
	}
	slices.SortFunc(rst, func(a, b types.Account) int {
		return a.Address.Compare(b.Address)
	})
	return rst
}

// cloneTx makes a copy that doesn't share the recipient with the caller.
func cloneTx(tx *types.Transaction) *types.Transaction {
	cp := *tx
	if tx.Contents.To != nil {
		to := *tx.Contents.To
		cp.Contents.To = &to
	}
	return &cp
}
