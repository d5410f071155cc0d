package types

import (
	"encoding/hex"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// EdSignatureSize is the size of an ed25519 signature.
const EdSignatureSize = 64

// EdSignature is an ed25519 signature over a transaction digest.
type EdSignature [EdSignatureSize]byte

// EmptyEdSignature is the zero signature.
var EmptyEdSignature = EdSignature{}

// Bytes returns the signature as a byte slice.
func (s EdSignature) Bytes() []byte { return s[:] }

// String returns the hex encoded signature.
func (s EdSignature) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText implements encoding.TextMarshaler.
func (s EdSignature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EdSignature) UnmarshalText(buf []byte) error {
	if hex.DecodedLen(len(buf)) != EdSignatureSize {
		return fmt.Errorf("signature: expected %d bytes, got %d", EdSignatureSize, hex.DecodedLen(len(buf)))
	}
	_, err := hex.Decode(s[:], buf)
	return err
}

// EncodeScale implements scale codec interface.
func (s *EdSignature) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, s[:])
}

// DecodeScale implements scale codec interface.
func (s *EdSignature) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, s[:])
}
