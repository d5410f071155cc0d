package signing

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/hash"
)

type verifyKey [hash.Size]byte

// CachedVerifier remembers outcomes of recent verifications. A resubmitted
// transaction is answered from the cache without repeating the curve operations.
type CachedVerifier struct {
	Verifier
	cache *lru.Cache[verifyKey, bool]
}

// NewCachedVerifier wraps verifier with a cache of the given size.
func NewCachedVerifier(verifier Verifier, size int) (*CachedVerifier, error) {
	cache, err := lru.New[verifyKey, bool](size)
	if err != nil {
		return nil, fmt.Errorf("create verify cache: %w", err)
	}
	return &CachedVerifier{Verifier: verifier, cache: cache}, nil
}

// Verify implements Verifier.
func (c *CachedVerifier) Verify(d Domain, address types.Address, msg []byte, sig types.EdSignature) bool {
	key := verifyKey(hash.Sum([]byte{byte(d)}, address[:], msg, sig[:]))
	if valid, ok := c.cache.Get(key); ok {
		return valid
	}
	valid := c.Verifier.Verify(d, address, msg, sig)
	c.cache.Add(key, valid)
	return valid
}

// Len returns the number of cached outcomes.
func (c *CachedVerifier) Len() int {
	return c.cache.Len()
}
