package ports

import (
	"context"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

// Authority is the credential presented to the transfer executor to approve
// an outgoing transfer. It is either a caller-held signature (a human
// signer) or the derivation seeds plus bump of a program-derived identity,
// with which the executor can re-derive the address and verify control.
type Authority struct {
	Address domain.Identity
	Signer  bool
	Seeds   [][]byte
	Bump    uint8
}

// SignerAuthority returns the credential of a principal that signed the
// invocation itself.
func SignerAuthority(addr domain.Identity) Authority {
	return Authority{Address: addr, Signer: true}
}

// DerivedAuthority returns the reproducible credential of a program-derived
// identity.
func DerivedAuthority(addr domain.Identity, bump uint8, seeds ...[]byte) Authority {
	return Authority{Address: addr, Bump: bump, Seeds: seeds}
}

// IsDerived ...
func (a Authority) IsDerived() bool {
	return len(a.Seeds) > 0
}

// TransferExecutor is the external primitive that physically moves asset
// balances between holding accounts. Transfers are synchronous and either
// fully succeed or fully fail; executor errors reach the caller verbatim.
type TransferExecutor interface {
	Transfer(
		ctx context.Context,
		asset, source, destination domain.Identity,
		authority Authority,
		amount uint64,
	) error
}

// TransferService is the full surface of the transfer collaborator exposed
// to local deployments: the executor itself plus the account provisioning
// used when creating a vault and by the regtest faucet.
type TransferService interface {
	TransferExecutor

	OpenAccount(ctx context.Context, asset, holder, authority domain.Identity) error
	Fund(ctx context.Context, asset, holder domain.Identity, amount uint64) error
	BalanceOf(ctx context.Context, asset, holder domain.Identity) (uint64, error)
}
