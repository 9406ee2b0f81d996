package multisig

import (
	"sort"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// OwnerRegistry is the immutable set of addresses allowed to co-sign a
// withdrawal.
type OwnerRegistry struct {
	// owners is sorted ascending and never modified after construction.
	owners []vault.Address
}

// NewOwnerRegistry returns a registry of given owners. The order of the input
// does not matter. It fails if the list is empty, contains the zero address
// or contains the same address more than once.
func NewOwnerRegistry(owners []vault.Address) (*OwnerRegistry, error) {
	if len(owners) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "owner registry cannot be empty")
	}
	sorted := make([]vault.Address, len(owners))
	copy(sorted, owners)
	vault.SortAddresses(sorted)

	for i, o := range sorted {
		if o.IsZero() {
			return nil, errors.Wrap(errors.ErrInput, "zero address cannot be an owner")
		}
		if i > 0 && sorted[i-1] == o {
			return nil, errors.Wrapf(errors.ErrInput, "duplicated owner %s", o)
		}
	}
	return &OwnerRegistry{owners: sorted}, nil
}

// Has returns true if given address is an owner.
func (r *OwnerRegistry) Has(addr vault.Address) bool {
	i := sort.Search(len(r.owners), func(i int) bool {
		return !r.owners[i].Less(addr)
	})
	return i < len(r.owners) && r.owners[i] == addr
}

// Size returns the number of owners.
func (r *OwnerRegistry) Size() int {
	return len(r.owners)
}

// Owners returns a copy of all owners, in ascending order.
func (r *OwnerRegistry) Owners() []vault.Address {
	res := make([]vault.Address, len(r.owners))
	copy(res, r.owners)
	return res
}
