package vault

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = common.AddressLength

// Address is a fixed width account identifier. Addresses are comparable
// values with a total order given by their big-endian byte representation.
//
// The zero value is never a valid account and serves as the lowest possible
// ordering sentinel.
type Address [AddressLength]byte

// ZeroAddress is the lowest possible address.
var ZeroAddress Address

// NewAddress copies given bytes into an address. It fails if the length does
// not match.
func NewAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errors.Wrapf(errors.ErrInput, "address must be %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// ParseAddress decodes a hex encoded address. The 0x prefix is optional.
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, errors.Wrapf(errors.ErrInput, "malformed address %q", s)
	}
	return Address(common.HexToAddress(s)), nil
}

// MustParseAddress is ParseAddress that panics on malformed input. Use it
// only for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Compare returns an integer comparing two addresses. The result will be 0
// if a == b, -1 if a < b, and +1 if a > b.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// Less returns true if a sorts strictly before b.
func (a Address) Less(b Address) bool {
	return a.Compare(b) < 0
}

// IsZero returns true for the sentinel zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Validate returns an error if this is not a usable account address.
func (a Address) Validate() error {
	if a.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "zero address")
	}
	return nil
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// String returns the EIP-55 checksummed hex representation.
func (a Address) String() string {
	return common.Address(a).Hex()
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		*a = ZeroAddress
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard array encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrEncoding, "cannot decode json")
	}
	return a.UnmarshalText([]byte(enc))
}

// SortAddresses orders given addresses in place, ascending.
func SortAddresses(addrs []Address) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
}
