package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto/eip712"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Digest schemes.
const (
	SchemePersonal = "personal"
	SchemeEIP712   = "eip712"
)

// Configuration holds everything needed to rebuild an Engine over an existing
// store.
type Configuration struct {
	Owners []vault.Address `json:"owners"`
	// Threshold is the number of owners that must sign. Zero requires all
	// owners.
	Threshold uint32 `json:"threshold,omitempty"`
	// Scheme selects the digest owners sign. Empty means personal.
	Scheme string       `json:"scheme,omitempty"`
	Domain DomainConfig `json:"domain"`
}

// DomainConfig is the EIP-712 domain used by the eip712 scheme.
type DomainConfig struct {
	Name              string        `json:"name"`
	Version           string        `json:"version"`
	ChainID           uint64        `json:"chain_id"`
	VerifyingContract vault.Address `json:"verifying_contract"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	raw, err := rlp.EncodeToBytes(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return raw, nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	if err := rlp.DecodeBytes(raw, c); err != nil {
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return nil
}

// Validate returns all problems found in the configuration.
func (c *Configuration) Validate() error {
	var errs error
	reg, err := NewOwnerRegistry(c.Owners)
	errs = errors.AppendField(errs, "Owners", err)
	if reg != nil && int(c.Threshold) > reg.Size() {
		errs = errors.AppendField(errs, "Threshold",
			errors.Wrapf(errors.ErrInput, "%d exceeds %d owners", c.Threshold, reg.Size()))
	}
	switch c.Scheme {
	case "", SchemePersonal:
	case SchemeEIP712:
		if c.Domain.Name == "" {
			errs = errors.AppendField(errs, "Domain.Name", errors.ErrEmpty)
		}
		if c.Domain.ChainID == 0 {
			errs = errors.AppendField(errs, "Domain.ChainID", errors.ErrEmpty)
		}
	default:
		errs = errors.AppendField(errs, "Scheme", errors.Wrapf(errors.ErrInput, "unknown scheme %q", c.Scheme))
	}
	return errs
}

// Digester returns the digester selected by the scheme.
func (c *Configuration) Digester() (Digester, error) {
	switch c.Scheme {
	case "", SchemePersonal:
		return PersonalDigester{}, nil
	case SchemeEIP712:
		return NewTypedDigester(eip712.Domain{
			Name:              c.Domain.Name,
			Version:           c.Domain.Version,
			ChainID:           new(big.Int).SetUint64(c.Domain.ChainID),
			VerifyingContract: c.Domain.VerifyingContract,
		})
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown scheme %q", c.Scheme)
	}
}
