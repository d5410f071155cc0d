package types

import "go.uber.org/zap/zapcore"

// Account is the balance held by an address.
type Account struct {
	Address Address
	Balance uint64
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a *Account) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("address", a.Address.String())
	encoder.AddUint64("balance", a.Balance)
	return nil
}
