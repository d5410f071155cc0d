package types

import "go.uber.org/zap/zapcore"

// Receipt describes a transaction that was applied to the ledger.
type Receipt struct {
	// Index is the position of the transaction in history.
	Index uint64
	Tx    *Transaction
	// Accounts holds balances of every account touched by the transaction, after the update.
	Accounts []Account
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r *Receipt) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("index", r.Index)
	if err := encoder.AddObject("tx", r.Tx); err != nil {
		return err
	}
	return encoder.AddArray("accounts", zapcore.ArrayMarshalerFunc(func(enc zapcore.ArrayEncoder) error {
		for i := range r.Accounts {
			if err := enc.AppendObject(&r.Accounts[i]); err != nil {
				return err
			}
		}
		return nil
	}))
}
