package types

import (
	"bytes"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-ledger/codec"
	"github.com/spacemeshos/go-ledger/hash"
)

// TxType selects how the ledger validates and applies a transaction.
type TxType uint8

const (
	// TxMint issues new value to the issuer account.
	TxMint TxType = iota + 1
	// TxSend moves value between two accounts.
	TxSend
	// TxCheck reads the balance of the sender without changing state.
	TxCheck
)

// TxTypes lists every transaction type the ledger understands.
var TxTypes = []TxType{TxMint, TxSend, TxCheck}

// String implements fmt.Stringer.
func (t TxType) String() string {
	switch t {
	case TxMint:
		return "mint"
	case TxSend:
		return "send"
	case TxCheck:
		return "check"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Known returns true if t is one of TxTypes.
func (t TxType) Known() bool {
	return t >= TxMint && t <= TxCheck
}

// MarshalText implements encoding.TextMarshaler.
func (t TxType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TxType) UnmarshalText(buf []byte) error {
	for _, typ := range TxTypes {
		if typ.String() == string(buf) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown transaction type %q", buf)
}

// TransactionID is a 32-byte blake3 sum of the encoded transaction, used as an identifier.
type TransactionID Hash32

// TransactionIDSize in bytes.
const TransactionIDSize = Hash32Length

// Hash32 returns the TransactionID as a Hash32.
func (id TransactionID) Hash32() Hash32 {
	return Hash32(id)
}

// ShortString returns the first 5 characters of the ID, for logging purposes.
func (id TransactionID) ShortString() string {
	return id.Hash32().ShortString()
}

// String implements fmt.Stringer.
func (id TransactionID) String() string {
	return id.Hash32().Hex()
}

// Bytes returns the TransactionID as a byte slice.
func (id TransactionID) Bytes() []byte {
	return id[:]
}

// Compare returns true if other (the given TransactionID) is less than this TransactionID, by lexicographic comparison.
func (id TransactionID) Compare(other TransactionID) bool {
	return bytes.Compare(id.Bytes(), other.Bytes()) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (id TransactionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// TxContents is the signed part of a transaction.
type TxContents struct {
	Type TxType
	From Address
	// To is required for TxSend and ignored by the other types.
	To     *Address
	Amount uint64
}

// Hash returns the digest that the sender signs.
func (c *TxContents) Hash() Hash32 {
	return Hash32(hash.Sum(codec.MustEncode(c)))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c *TxContents) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("type", c.Type.String())
	encoder.AddString("from", c.From.String())
	if c.To != nil {
		encoder.AddString("to", c.To.String())
	}
	encoder.AddUint64("amount", c.Amount)
	return nil
}

// Transaction is the contents with the signature of the sender. It is never modified
// after it was signed.
type Transaction struct {
	Contents  TxContents
	Signature EdSignature
}

// ID returns the digest of the encoded transaction, including the signature.
// Signatures are deterministic and transactions carry no nonce, so the ID names the
// signed payload. The same transaction applied twice has one ID and two history indexes.
func (t *Transaction) ID() TransactionID {
	return TransactionID(hash.Sum(codec.MustEncode(t)))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (t *Transaction) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", t.ID().ShortString())
	return encoder.AddObject("contents", &t.Contents)
}

// BytesToTransaction decodes a transaction from its scale encoding.
func BytesToTransaction(buf []byte) (*Transaction, error) {
	var tx Transaction
	if err := codec.Decode(buf, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &tx, nil
}
