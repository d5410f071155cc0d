package ledger

import (
	"errors"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-ledger/common/types"
)

// Status is the outcome class of a submitted transaction.
type Status uint8

const (
	// StatusApplied means that balances were updated and the transaction was appended to history.
	StatusApplied Status = iota
	// StatusRejected means that one of the checks failed and nothing but lazily
	// created accounts changed.
	StatusRejected
	// StatusQueried means that a check transaction was answered with a balance.
	StatusQueried
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusRejected:
		return "rejected"
	case StatusQueried:
		return "queried"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason is a stable label for the outcome. It is used in logs, metrics and by the cli.
type Reason string

const (
	ReasonApplied             Reason = "applied"
	ReasonQueryOnly           Reason = "query_only"
	ReasonMalformed           Reason = "malformed"
	ReasonInvalidSignature    Reason = "invalid_signature"
	ReasonUnauthorizedMint    Reason = "unauthorized_mint"
	ReasonInsufficientBalance Reason = "insufficient_balance"
	ReasonMissingRecipient    Reason = "missing_recipient"
	ReasonUnknownTxType       Reason = "unknown_transaction_type"
	ReasonBalanceOverflow     Reason = "balance_overflow"
)

var rejections = []struct {
	err    error
	reason Reason
}{
	{ErrMalformed, ReasonMalformed},
	{ErrInvalidSignature, ReasonInvalidSignature},
	{ErrUnauthorizedMint, ReasonUnauthorizedMint},
	{ErrInsufficientBalance, ReasonInsufficientBalance},
	{ErrMissingRecipient, ReasonMissingRecipient},
	{ErrUnknownTxType, ReasonUnknownTxType},
	{ErrBalanceOverflow, ReasonBalanceOverflow},
}

func reasonOf(err error) Reason {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	panic("BUG: rejection without reason: " + err.Error())
}

// Result of a submitted transaction.
type Result struct {
	ID     types.TransactionID
	Type   types.TxType
	Status Status
	Reason Reason
	// Balance is the queried balance for StatusQueried and the balance of the
	// sender after the update for StatusApplied.
	Balance uint64
	// Index is the position in history for StatusApplied.
	Index uint64
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r *Result) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", r.ID.ShortString())
	encoder.AddString("type", r.Type.String())
	encoder.AddString("status", r.Status.String())
	encoder.AddString("reason", string(r.Reason))
	switch r.Status {
	case StatusApplied:
		encoder.AddUint64("index", r.Index)
		encoder.AddUint64("balance", r.Balance)
	case StatusQueried:
		encoder.AddUint64("balance", r.Balance)
	}
	return nil
}
