package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-ledger/common/types"
)

// Domain separates signatures over different kinds of payloads.
type Domain byte

const (
	// TX is the domain of ledger transaction signatures.
	TX Domain = 1
)

// String returns the string representation of a domain.
func (d Domain) String() string {
	switch d {
	case TX:
		return "TX"
	default:
		return "UNKNOWN"
	}
}

type edSignerOption struct {
	priv   PrivateKey
	file   string
	prefix []byte
}

// EdSignerOptionFunc modifies EdSigner.
type EdSignerOptionFunc func(*edSignerOption) error

// WithPrefix sets the prefix used by EdSigner. This usually is the Network ID.
func WithPrefix(prefix []byte) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		opt.prefix = prefix
		return nil
	}
}

// ToFile writes the private key to a file after creation.
func ToFile(path string) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.file != "" {
			return errors.New("invalid option ToFile: file already set")
		}
		opt.file = path
		return nil
	}
}

// FromFile loads the private key from a file.
func FromFile(path string) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option FromFile: private key already set")
		}
		if opt.file != "" {
			return errors.New("invalid option FromFile: file already set")
		}

		// read hex data from file
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to open identity file at %s: %w", path, err)
		}
		data = bytes.TrimSpace(data)
		if n := hex.DecodedLen(len(data)); n != PrivateKeySize {
			return fmt.Errorf("invalid key size %d/%d for %s", n, PrivateKeySize, filepath.Base(path))
		}

		dst := make([]byte, PrivateKeySize)
		n, err := hex.Decode(dst, data)
		if err != nil || n != PrivateKeySize {
			return fmt.Errorf("decoding private key in %s: %w", filepath.Base(path), err)
		}

		priv := PrivateKey(dst)
		if err := checkKeyPair(priv); err != nil {
			return err
		}
		opt.priv = priv
		opt.file = path
		return nil
	}
}

// WithPrivateKey sets the private key used by EdSigner.
func WithPrivateKey(priv PrivateKey) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}
		if len(priv) != ed25519.PrivateKeySize {
			return errors.New("could not create EdSigner: invalid key length")
		}
		if err := checkKeyPair(priv); err != nil {
			return err
		}
		opt.priv = priv
		return nil
	}
}

// WithKeyFromRand sets the private key used by EdSigner using predictable randomness source.
func WithKeyFromRand(rand io.Reader) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		_, priv, err := ed25519.GenerateKey(rand)
		if err != nil {
			return fmt.Errorf("could not generate key pair: %w", err)
		}
		opt.priv = priv
		return nil
	}
}

func checkKeyPair(priv PrivateKey) error {
	keyPair := ed25519.NewKeyFromSeed(priv[:32])
	if !bytes.Equal(keyPair[32:], priv.Public().(ed25519.PublicKey)) {
		return errors.New("private and public do not match")
	}
	return nil
}

// EdSigner represents an ED25519 signer.
type EdSigner struct {
	priv PrivateKey
	file string

	prefix []byte
}

// NewEdSigner returns an auto-generated ed signer.
func NewEdSigner(opts ...EdSignerOptionFunc) (*EdSigner, error) {
	cfg := &edSignerOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.priv == nil {
		_, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("could not generate key pair: %w", err)
		}
		cfg.priv = priv
	}
	if cfg.file != "" {
		if err := persist(cfg.file, cfg.priv); err != nil {
			return nil, err
		}
	}
	return &EdSigner{
		priv:   cfg.priv,
		prefix: cfg.prefix,
		file:   cfg.file,
	}, nil
}

// persist writes the key unless the file already holds exactly this key.
func persist(path string, priv PrivateKey) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("stat identity file %s: %w", filepath.Base(path), err)
	default:
		if string(bytes.TrimSpace(data)) == hex.EncodeToString(priv) {
			return nil
		}
		return fmt.Errorf("save identity file %s: %w", filepath.Base(path), fs.ErrExist)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	dst := make([]byte, hex.EncodedLen(len(priv)))
	hex.Encode(dst, priv)
	if err := atomic.WriteFile(path, bytes.NewReader(dst)); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restrict identity file permissions: %w", err)
	}
	return nil
}

// Sign signs the provided message.
func (es *EdSigner) Sign(d Domain, m []byte) types.EdSignature {
	return *(*[types.EdSignatureSize]byte)(ed25519.Sign(es.priv, signedMessage(es.prefix, d, m)))
}

// SignTx signs the digest of the contents and returns the complete transaction.
func (es *EdSigner) SignTx(contents types.TxContents) *types.Transaction {
	digest := contents.Hash()
	return &types.Transaction{
		Contents:  contents,
		Signature: es.Sign(TX, digest[:]),
	}
}

// Address returns the ledger address controlled by the signer.
func (es *EdSigner) Address() types.Address {
	return es.PublicKey().Address()
}

// PublicKey returns the public key of the signer.
func (es *EdSigner) PublicKey() *PublicKey {
	return NewPublicKey(es.priv.Public().(ed25519.PublicKey))
}

// PrivateKey returns private key.
func (es *EdSigner) PrivateKey() PrivateKey {
	return es.priv
}

// Name returns the name of the signer. This is the filename of the identity file.
func (es *EdSigner) Name() string {
	if es.file == "" {
		return ""
	}
	return filepath.Base(es.file)
}

// Prefix returns the prefix mixed into every signed message.
func (es *EdSigner) Prefix() []byte {
	return es.prefix
}

func (es *EdSigner) String() string {
	return es.PublicKey().ShortString()
}

func signedMessage(prefix []byte, d Domain, m []byte) []byte {
	msg := make([]byte, 0, len(prefix)+1+len(m))
	msg = append(msg, prefix...)
	msg = append(msg, byte(d))
	msg = append(msg, m...)
	return msg
}
