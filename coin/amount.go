/*
Package coin implements the unsigned 256 bit amount of value held by the
vault and by external accounts.

The smallest indivisible unit is a wei, following the convention of the
ecosystem that the owners sign for. Human readable values are accepted with a
unit suffix, for example "1.5 ETH" or "20 gwei".
*/
package coin

import (
	"encoding/json"
	"math/big"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/vault/errors"
)

// Amount is a non-negative quantity of value, measured in wei.
//
// The zero value is a valid, zero amount. Amount is a value type and can be
// compared with ==.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of given wei.
func NewAmount(wei uint64) Amount {
	return Amount{v: *uint256.NewInt(wei)}
}

// FromBig converts given integer into an amount. It fails for negative values
// and values that do not fit in 256 bits.
func FromBig(b *big.Int) (Amount, error) {
	if b == nil {
		return Amount{}, nil
	}
	if b.Sign() < 0 {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "negative value %s", b)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "value %s exceeds 256 bits", b)
	}
	return Amount{v: *v}, nil
}

// Big returns the amount as a big integer.
func (a Amount) Big() *big.Int {
	return a.v.ToBig()
}

// Add returns the sum of both amounts. It fails on overflow.
func (a Amount) Add(o Amount) (Amount, error) {
	var sum uint256.Int
	sum.Add(&a.v, &o.v)
	if sum.Lt(&a.v) {
		return Amount{}, errors.Wrap(errors.ErrOverflow, "amount addition")
	}
	return Amount{v: sum}, nil
}

// Subtract returns a minus o. It fails if o is greater than a.
func (a Amount) Subtract(o Amount) (Amount, error) {
	if a.v.Lt(&o.v) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "cannot subtract %s from %s", o, a)
	}
	var diff uint256.Int
	diff.Sub(&a.v, &o.v)
	return Amount{v: diff}, nil
}

// Compare returns 0 if both amounts are equal, -1 if a is smaller and 1 if a
// is greater than o.
func (a Amount) Compare(o Amount) int {
	return a.v.Cmp(&o.v)
}

// Equals returns true if both amounts are the same.
func (a Amount) Equals(o Amount) bool {
	return a.v.Eq(&o.v)
}

// IsGTE returns true if a is greater or equal to o.
func (a Amount) IsGTE(o Amount) bool {
	return !a.v.Lt(&o.v)
}

// IsZero returns true for a zero amount.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Float64 returns an approximation of the amount. Use only for reporting.
func (a Amount) Float64() float64 {
	f, _ := new(big.Float).SetInt(a.Big()).Float64()
	return f
}

// String returns the decimal representation in wei.
func (a Amount) String() string {
	return a.Big().String()
}

// Human returns the amount in ETH, without trailing zeros.
func (a Amount) Human() string {
	s := a.String()
	if len(s) <= etherDecimals {
		s = strings.Repeat("0", etherDecimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-etherDecimals], strings.TrimRight(s[len(s)-etherDecimals:], "0")
	if frac == "" {
		return whole + " ETH"
	}
	return whole + "." + frac + " ETH"
}

// MarshalJSON encodes the amount as a decimal string, because JSON numbers
// cannot hold 256 bit values.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string, a human readable string or a JSON
// number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrEncoding, "amount must be a string or a number")
		}
		s = n.String()
	}
	val, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

const etherDecimals = 18

var units = map[string]int{
	"":     0,
	"wei":  0,
	"gwei": 9,
	"eth":  etherDecimals,
}

var amountFormatRx = regexp.MustCompile(`^(\d+)(?:\.(\d+))?\s*([a-zA-Z]*)$`)

// ParseAmount parses a decimal wei amount or a human readable representation.
// Accepted format is a string:
//
//	"<whole>[.<fractional>] [<unit>]"
//
// where unit is one of wei, gwei or ETH (case insensitive). Without a unit
// the value is in wei.
func ParseAmount(h string) (Amount, error) {
	m := amountFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "invalid format %q", h)
	}
	decimals, ok := units[strings.ToLower(m[3])]
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "unknown unit %q", m[3])
	}
	frac := m[2]
	if len(frac) > decimals {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "too many decimal places for %q", h)
	}
	digits := m[1] + frac + strings.Repeat("0", decimals-len(frac))
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "invalid number %q", h)
	}
	return FromBig(n)
}

// MustParseAmount is ParseAmount that panics on error. Use only for constants
// and tests.
func MustParseAmount(h string) Amount {
	a, err := ParseAmount(h)
	if err != nil {
		panic(err)
	}
	return a
}

// Set updates this amount value to what is provided. This method implements
// flag.Value interface.
func (a *Amount) Set(raw string) error {
	val, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = val
	return nil
}
