package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/iov-one/vault/crypto/eip712"
	"github.com/iov-one/vault/errors"
)

// Digester computes the digest that owners sign to authorize an intent at a
// given nonce. Implementations must be deterministic.
type Digester interface {
	Digest(intent Intent, nonce uint64) ([32]byte, error)
}

var withdrawalArgs = abi.Arguments{
	{Type: mustType("uint256")},
	{Type: mustType("address")},
}

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// WithdrawalHash returns keccak256(abi.encode(amount, recipient) || nonce),
// with the nonce encoded as a 32 byte big endian word.
func WithdrawalHash(intent Intent, nonce uint64) ([32]byte, error) {
	encoded, err := withdrawalArgs.Pack(intent.Amount.Big(), common.Address(intent.Recipient))
	if err != nil {
		return [32]byte{}, errors.Wrapf(errors.ErrEncoding, "abi encode: %s", err)
	}
	return eip712.Keccak256(encoded, math.U256Bytes(new(big.Int).SetUint64(nonce))), nil
}

// PersonalDigester produces digests compatible with wallets signing a
// personal message, where the withdrawal hash is the message.
type PersonalDigester struct{}

var _ Digester = PersonalDigester{}

// Digest returns the EIP-191 text hash of the withdrawal hash.
func (PersonalDigester) Digest(intent Intent, nonce uint64) ([32]byte, error) {
	h, err := WithdrawalHash(intent, nonce)
	if err != nil {
		return [32]byte{}, err
	}
	var out [32]byte
	copy(out[:], accounts.TextHash(h[:]))
	return out, nil
}

// WithdrawType is the EIP-712 type of a signed withdrawal.
const WithdrawType = "Withdraw(uint256 amount,address to,uint256 nonce)"

// TypedDigester produces EIP-712 typed data digests bound to a domain.
type TypedDigester struct {
	separator [32]byte
}

var _ Digester = (*TypedDigester)(nil)

// NewTypedDigester returns a digester for given domain.
func NewTypedDigester(d eip712.Domain) (*TypedDigester, error) {
	sep, err := d.Separator()
	if err != nil {
		return nil, errors.Wrap(err, "domain separator")
	}
	return &TypedDigester{separator: sep}, nil
}

// Digest implements Digester.
func (t *TypedDigester) Digest(intent Intent, nonce uint64) ([32]byte, error) {
	sh, err := eip712.StructHash(WithdrawType,
		[]string{"uint256", "address", "uint256"},
		intent.Amount.Big(),
		common.Address(intent.Recipient),
		new(big.Int).SetUint64(nonce),
	)
	if err != nil {
		return [32]byte{}, err
	}
	return eip712.TypedDataHash(t.separator, sh), nil
}
