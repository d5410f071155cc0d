package signing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-ledger/common/types"
)

func TestEdVerifier_Verify(t *testing.T) {
	signer, err := NewEdSigner()
	require.NoError(t, err)
	verifier := NewEdVerifier()

	msg := []byte("ledger")
	sig := signer.Sign(TX, msg)

	t.Run("valid", func(t *testing.T) {
		require.True(t, verifier.Verify(TX, signer.Address(), msg, sig))
	})
	t.Run("wrong address", func(t *testing.T) {
		other, err := NewEdSigner()
		require.NoError(t, err)
		require.False(t, verifier.Verify(TX, other.Address(), msg, sig))
	})
	t.Run("wrong domain", func(t *testing.T) {
		require.False(t, verifier.Verify(Domain(0), signer.Address(), msg, sig))
	})
	t.Run("tampered message", func(t *testing.T) {
		require.False(t, verifier.Verify(TX, signer.Address(), []byte("ledgeR"), sig))
	})
	t.Run("empty signature", func(t *testing.T) {
		require.False(t, verifier.Verify(TX, signer.Address(), msg, types.EmptyEdSignature))
	})
}

type countingVerifier struct {
	Verifier
	calls int
}

func (c *countingVerifier) Verify(d Domain, address types.Address, msg []byte, sig types.EdSignature) bool {
	c.calls++
	return c.Verifier.Verify(d, address, msg, sig)
}

func TestCachedVerifier(t *testing.T) {
	signer, err := NewEdSigner()
	require.NoError(t, err)
	ed := NewEdVerifier()
	counting := &countingVerifier{Verifier: ed}

	cached, err := NewCachedVerifier(counting, 2)
	require.NoError(t, err)

	msg := []byte("payload")
	sig := signer.Sign(TX, msg)
	for range 3 {
		require.True(t, cached.Verify(TX, signer.Address(), msg, sig))
	}
	require.Equal(t, 1, counting.calls)

	for range 2 {
		require.False(t, cached.Verify(TX, types.Address{1}, msg, sig))
	}
	require.Equal(t, 2, counting.calls)
	require.Equal(t, 2, cached.Len())

	_, err = NewCachedVerifier(ed, 0)
	require.Error(t, err)
}
