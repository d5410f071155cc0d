package ledger

import (
	"fmt"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/signing"
)

// checkSignature verifies the signature over the contents digest against the sender address.
func checkSignature(verifier verifier, tx *types.Transaction) error {
	digest := tx.Contents.Hash()
	if !verifier.Verify(signing.TX, tx.Contents.From, digest[:], tx.Signature) {
		return fmt.Errorf("%w: sender %s", ErrInvalidSignature, tx.Contents.From)
	}
	return nil
}

// bootstrap creates empty accounts for the sender and the recipient.
// Created accounts stay even if the transaction is rejected later.
func bootstrap(s *state, contents *types.TxContents) []types.Address {
	var created []types.Address
	if s.ensure(contents.From) {
		created = append(created, contents.From)
	}
	if contents.To != nil && s.ensure(*contents.To) {
		created = append(created, *contents.To)
	}
	return created
}

// verdict of the type specific check.
type verdict struct {
	// query is set for check transactions, they are never applied.
	query   bool
	balance uint64
	err     error
}

// checkType runs the rules of the transaction type. Accounts of sender and recipient
// must be bootstrapped before.
func checkType(s *state, issuer types.Address, contents *types.TxContents) verdict {
	switch contents.Type {
	case types.TxMint:
		if contents.From != issuer {
			return verdict{err: fmt.Errorf("%w: signer %s", ErrUnauthorizedMint, contents.From)}
		}
		if !s.canMint(contents.Amount) {
			return verdict{err: fmt.Errorf("%w: mint %d", ErrBalanceOverflow, contents.Amount)}
		}
		return verdict{}
	case types.TxCheck:
		return verdict{query: true, balance: s.mustGet(contents.From).Balance}
	case types.TxSend:
		if contents.To == nil {
			return verdict{err: ErrMissingRecipient}
		}
		balance := s.mustGet(contents.From).Balance
		if contents.Amount > balance {
			return verdict{err: fmt.Errorf("%w: amount %d balance %d", ErrInsufficientBalance, contents.Amount, balance)}
		}
		return verdict{}
	}
	return verdict{err: fmt.Errorf("%w: %s", ErrUnknownTxType, contents.Type)}
}

// apply updates balances of a transaction that passed all checks and appends it to history.
func apply(s *state, tx *types.Transaction) (uint64, []types.Account) {
	contents := &tx.Contents
	touched := []types.Address{contents.From}
	switch contents.Type {
	case types.TxMint:
		s.mint(contents.From, contents.Amount)
	case types.TxSend:
		s.transfer(contents.From, *contents.To, contents.Amount)
		if *contents.To != contents.From {
			touched = append(touched, *contents.To)
		}
	default:
		panic(fmt.Sprintf("BUG: apply called for %s", contents.Type))
	}
	index := s.appendTx(tx)
	accounts := make([]types.Account, 0, len(touched))
	for _, address := range touched {
		accounts = append(accounts, *s.mustGet(address))
	}
	return index, accounts
}
