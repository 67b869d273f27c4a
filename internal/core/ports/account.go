package ports

import "github.com/poolvault/poolvault-daemon/internal/core/domain"

// Account is one record slot of an invocation's working set, as declared
// and locked by the hosting storage layer for the whole invocation.
type Account struct {
	Address  domain.Identity
	Data     []byte
	Signer   bool
	Writable bool
}

// HasAddress reports whether the slot sits at the given address.
func (a *Account) HasAddress(addr domain.Identity) bool {
	return a.Address == addr
}

// IsSigner reports whether the slot's nominal owner authenticated the
// invocation with its signature.
func (a *Account) IsSigner() bool {
	return a.Signer
}
