package signing

import "github.com/spacemeshos/go-ledger/common/types"

// Verifier checks that a signature over msg was produced by the key behind address.
type Verifier interface {
	Verify(d Domain, address types.Address, msg []byte, sig types.EdSignature) bool
}
