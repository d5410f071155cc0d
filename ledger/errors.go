package ledger

import "errors"

var (
	// ErrMalformed is returned for a nil transaction.
	ErrMalformed = errors.New("malformed transaction")
	// ErrInvalidSignature is returned if the signature doesn't match the sender.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrUnauthorizedMint is returned if mint is signed by anyone but the issuer.
	ErrUnauthorizedMint = errors.New("mint by non-issuer")
	// ErrInsufficientBalance is returned if sender can't cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrMissingRecipient is returned for send without a recipient.
	ErrMissingRecipient = errors.New("missing recipient")
	// ErrUnknownTxType is returned for types outside of types.TxTypes.
	ErrUnknownTxType = errors.New("unknown transaction type")
	// ErrBalanceOverflow is returned if mint would overflow the total supply.
	ErrBalanceOverflow = errors.New("balance overflow")
)
