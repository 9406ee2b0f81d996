/*
Package eip712 implements the subset of EIP-712 typed structured data hashing
needed to sign flat structures made of static ABI types.
*/
package eip712

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"golang.org/x/crypto/sha3"
)

// DomainType is the EIP-712 type of the domain separator structure.
const DomainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"

// Domain binds signatures to a single deployment.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract vault.Address
}

// Separator returns the domain separator hash.
func (d Domain) Separator() ([32]byte, error) {
	chainID := d.ChainID
	if chainID == nil {
		chainID = new(big.Int)
	}
	return StructHash(DomainType,
		[]string{"bytes32", "bytes32", "uint256", "address"},
		Keccak256([]byte(d.Name)),
		Keccak256([]byte(d.Version)),
		chainID,
		common.Address(d.VerifyingContract),
	)
}

// TypeHash returns the hash of the type encoding, for example
// "Withdraw(uint256 amount,address to,uint256 nonce)".
func TypeHash(typ string) [32]byte {
	return Keccak256([]byte(typ))
}

// StructHash returns keccak256(typeHash || abi.encode(values...)). Each value
// must be of the Go type that go-ethereum ABI packing expects for the
// corresponding ABI type (*big.Int for uint256, common.Address for address
// and [32]byte for bytes32).
func StructHash(typ string, types []string, values ...interface{}) ([32]byte, error) {
	if len(types) != len(values) {
		return [32]byte{}, errors.Wrapf(errors.ErrInput, "%d types for %d values", len(types), len(values))
	}
	args := make(abi.Arguments, 0, len(types)+1)
	for _, name := range append([]string{"bytes32"}, types...) {
		t, err := abi.NewType(name, "", nil)
		if err != nil {
			return [32]byte{}, errors.Wrapf(errors.ErrInput, "abi type %q: %s", name, err)
		}
		args = append(args, abi.Argument{Type: t})
	}
	encoded, err := args.Pack(append([]interface{}{TypeHash(typ)}, values...)...)
	if err != nil {
		return [32]byte{}, errors.Wrapf(errors.ErrEncoding, "abi encode %s: %s", typ, err)
	}
	return Keccak256(encoded), nil
}

// TypedDataHash returns the final digest to be signed,
// keccak256("\x19\x01" || domainSeparator || structHash).
func TypedDataHash(domainSeparator, structHash [32]byte) [32]byte {
	return Keccak256([]byte{0x19, 0x01}, domainSeparator[:], structHash[:])
}

// Keccak256 returns the legacy Keccak-256 hash of all chunks concatenated.
func Keccak256(chunks ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		h.Write(c)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
