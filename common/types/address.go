package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cosmos/btcutil/bech32"
	"github.com/spacemeshos/go-scale"
)

// AddressLength is the expected length of the address. The address is the
// ed25519 public key of the account owner.
const AddressLength = 32

var (
	// ErrWrongAddressLength is returned when the length of the address is not correct.
	ErrWrongAddressLength = errors.New("wrong address length")
	// ErrUnsupportedNetwork is returned when a network is not supported.
	ErrUnsupportedNetwork = errors.New("unsupported network")
	// ErrDecodeBech32 is returned when an error occurs during decoding bech32.
	ErrDecodeBech32 = errors.New("error decoding bech32")
)

// Config is the configuration of the address package.
type Config struct {
	NetworkHRP string `mapstructure:"network-hrp"`
}

var networkHrp = "ldg"

// SetNetworkHRP updates the human readable part used to encode addresses.
func SetNetworkHRP(update string) {
	networkHrp = update
}

// NetworkHRP returns the human readable part used to encode addresses.
func NetworkHRP() string {
	return networkHrp
}

// DefaultAddressConfig returns the default configuration of the address package.
func DefaultAddressConfig() *Config {
	return &Config{
		NetworkHRP: "ldg",
	}
}

// DefaultTestAddressConfig returns the default test configuration of the address package.
func DefaultTestAddressConfig() *Config {
	return &Config{
		NetworkHRP: "ltest",
	}
}

// Address represents the address of a ledger account with AddressLength length.
type Address [AddressLength]byte

// EmptyAddress is the zero address. It is never derived from a valid key pair.
var EmptyAddress = Address{}

// StringToAddress returns a new Address from a given string like `ldg1abc...`.
func StringToAddress(src string) (Address, error) {
	var addr Address
	hrp, data, err := bech32.DecodeNoLimit(src)
	if err != nil {
		return addr, fmt.Errorf("%s: %w", ErrDecodeBech32, err)
	}

	// for encoding bech32 uses slice of 5-bit unsigned integers. convert it back it 8-bit uints.
	dataConverted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return addr, fmt.Errorf("error converting bech32 bits: %w", err)
	}
	if len(dataConverted) != AddressLength {
		return addr, fmt.Errorf("expected %d bytes, got %d: %w", AddressLength, len(dataConverted), ErrWrongAddressLength)
	}
	if networkHrp != hrp {
		return addr, fmt.Errorf("wrong network id: expected `%s`, got `%s`: %w", networkHrp, hrp, ErrUnsupportedNetwork)
	}
	copy(addr[:], dataConverted)
	return addr, nil
}

// GenerateAddress generates an address from a public key.
func GenerateAddress(publicKey []byte) Address {
	var addr Address
	copy(addr[:], publicKey)
	return addr
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// IsEmpty checks if address is empty.
func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}

// String implements fmt.Stringer.
func (a Address) String() string {
	dataConverted, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		panic(fmt.Sprintf("error converting bech32 bits: %s", err))
	}
	result, err := bech32.Encode(networkHrp, dataConverted)
	if err != nil {
		panic(fmt.Sprintf("error encoding to bech32: %s", err))
	}
	return result
}

// ShortString returns the first 5 hex characters of the address, for logging purposes.
func (a Address) ShortString() string {
	return hex.EncodeToString(a[:])[:5]
}

// Format implements fmt.Formatter, forcing the byte slice to be formatted as is,
// without going through the stringer interface used for logging.
func (a Address) Format(s fmt.State, c rune) {
	if c == 's' || c == 'v' {
		_, _ = fmt.Fprint(s, a.String())
		return
	}
	_, _ = fmt.Fprintf(s, "%"+string(c), a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(buf []byte) error {
	parsed, err := StringToAddress(string(buf))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EncodeScale implements scale codec interface.
func (a *Address) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, a[:])
}

// DecodeScale implements scale codec interface.
func (a *Address) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, a[:])
}

// Compare returns -1, 0 or 1 comparing addresses byte-wise.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}
