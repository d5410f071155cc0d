package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// EncodeScale implements scale codec interface.
func (t *TxContents) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact8(enc, uint8(t.Type))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.From[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		var present uint8
		if t.To != nil {
			present = 1
		}
		n, err := scale.EncodeCompact8(enc, present)
		if err != nil {
			return total, err
		}
		total += n
		if t.To != nil {
			n, err := scale.EncodeByteArray(enc, t.To[:])
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	{
		n, err := scale.EncodeCompact64(enc, t.Amount)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *TxContents) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact8(dec)
		if err != nil {
			return total, err
		}
		total += n
		t.Type = TxType(field)
	}
	{
		n, err := scale.DecodeByteArray(dec, t.From[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		present, n, err := scale.DecodeCompact8(dec)
		if err != nil {
			return total, err
		}
		total += n
		switch present {
		case 0:
			t.To = nil
		case 1:
			t.To = new(Address)
			n, err := scale.DecodeByteArray(dec, t.To[:])
			if err != nil {
				return total, err
			}
			total += n
		default:
			return total, fmt.Errorf("invalid option marker %d", present)
		}
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		t.Amount = field
	}
	return total, nil
}

// EncodeScale implements scale codec interface.
func (t *Transaction) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := t.Contents.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Transaction) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := t.Contents.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, t.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
