package signing

import (
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-ledger/common/types"
)

func TestNewEdSignerFromBuffer(t *testing.T) {
	b := []byte{1, 2, 3}
	_, err := NewEdSigner(WithPrivateKey(b))
	require.ErrorContains(t, err, "invalid key length")

	b = make([]byte, 64)
	_, err = NewEdSigner(WithPrivateKey(b))
	require.ErrorContains(t, err, "private and public do not match")
}

func TestEdSigner_Sign(t *testing.T) {
	ed, err := NewEdSigner()
	require.NoError(t, err)

	m := make([]byte, 4)
	rand.Read(m)
	sig := ed.Sign(TX, m)
	signed := make([]byte, len(m)+1)
	signed[0] = byte(TX)
	copy(signed[1:], m)

	ok := ed25519.Verify(ed.PublicKey().PublicKey, signed, sig[:])
	require.Truef(t, ok, "failed to verify message %x with sig %x", m, sig)
}

func TestEdSigner_ValidKeyEncoding(t *testing.T) {
	ed, err := NewEdSigner()
	require.NoError(t, err)

	require.Equal(t, []byte(ed.priv[32:]), ed.PublicKey().Bytes())
	require.Equal(t, ed.PublicKey().Bytes(), ed.Address().Bytes())
}

func TestEdSigner_WithPrivateKey(t *testing.T) {
	ed, err := NewEdSigner()
	require.NoError(t, err)

	key := ed.PrivateKey()
	ed2, err := NewEdSigner(WithPrivateKey(key))
	require.NoError(t, err)
	require.Equal(t, ed.priv, ed2.priv)
	require.Equal(t, ed.PublicKey(), ed2.PublicKey())
	require.Equal(t, ed.Address(), ed2.Address())
}

func TestEdSigner_File(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys", "issuer.key")
		ed, err := NewEdSigner(ToFile(path))
		require.NoError(t, err)
		require.Equal(t, "issuer.key", ed.Name())

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

		loaded, err := NewEdSigner(FromFile(path))
		require.NoError(t, err)
		require.Equal(t, ed.Address(), loaded.Address())
	})
	t.Run("does not overwrite other key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "issuer.key")
		_, err := NewEdSigner(ToFile(path))
		require.NoError(t, err)

		_, err = NewEdSigner(ToFile(path))
		require.ErrorIs(t, err, fs.ErrExist)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := NewEdSigner(FromFile(filepath.Join(t.TempDir(), "missing.key")))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
	t.Run("wrong size", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "short.key")
		require.NoError(t, os.WriteFile(path, []byte("abcd"), 0o600))
		_, err := NewEdSigner(FromFile(path))
		require.ErrorContains(t, err, "invalid key size")
	})
	t.Run("conflicting options", func(t *testing.T) {
		ed, err := NewEdSigner()
		require.NoError(t, err)
		_, err = NewEdSigner(WithPrivateKey(ed.PrivateKey()), FromFile("unused"))
		require.ErrorContains(t, err, "private key already set")
	})
}

func TestEdSigner_SignTx(t *testing.T) {
	ed, err := NewEdSigner(WithPrefix([]byte("net")))
	require.NoError(t, err)
	verifier := NewEdVerifier(WithVerifierPrefix([]byte("net")))

	to := types.Address{1}
	tx := ed.SignTx(types.TxContents{Type: types.TxSend, From: ed.Address(), To: &to, Amount: 7})
	digest := tx.Contents.Hash()
	require.True(t, verifier.Verify(TX, ed.Address(), digest[:], tx.Signature))

	other := NewEdVerifier(WithVerifierPrefix([]byte("other")))
	require.False(t, other.Verify(TX, ed.Address(), digest[:], tx.Signature))
}

func TestPublicKey_ShortString(t *testing.T) {
	pub := NewPublicKey([]byte{1, 2, 3})
	require.Equal(t, "010203", pub.String())
	require.Equal(t, "01020", pub.ShortString())

	pub = NewPublicKey([]byte{1, 2})
	require.Equal(t, pub.String(), pub.ShortString())
}
