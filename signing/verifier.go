package signing

import (
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-ledger/common/types"
)

type edVerifierOption struct {
	prefix []byte
}

// VerifierOptionFunc to modify verifier.
type VerifierOptionFunc func(*edVerifierOption)

// WithVerifierPrefix sets the prefix used by EdVerifier. This usually is the Network ID.
func WithVerifierPrefix(prefix []byte) VerifierOptionFunc {
	return func(opts *edVerifierOption) {
		opts.prefix = prefix
	}
}

// EdVerifier verifies signatures against the public key that an address is made of.
type EdVerifier struct {
	prefix []byte
}

// NewEdVerifier returns a verifier that uses the same prefix as the signers it checks.
func NewEdVerifier(opts ...VerifierOptionFunc) *EdVerifier {
	cfg := &edVerifierOption{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &EdVerifier{
		prefix: cfg.prefix,
	}
}

// Verify verifies that a signature matches the address and message.
func (es *EdVerifier) Verify(d Domain, address types.Address, m []byte, sig types.EdSignature) bool {
	return ed25519.Verify(address[:], signedMessage(es.prefix, d, m), sig[:])
}
