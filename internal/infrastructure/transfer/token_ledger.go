// Package transfer provides the in-process implementation of the external
// transfer primitive: a fungible-token ledger of holding accounts keyed by
// (asset, holder). It is the executor wired in local and regtest
// deployments; calls are rate limited and guarded by a circuit breaker the
// same way an out-of-process service would be.
package transfer

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/sony/gobreaker"
	"github.com/timshannon/badgerhold/v4"
	"go.uber.org/ratelimit"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	"github.com/poolvault/poolvault-daemon/pkg/circuitbreaker"
	"github.com/poolvault/poolvault-daemon/pkg/derivation"
	"github.com/poolvault/poolvault-daemon/pkg/mathutil"
)

// HoldingAccount is one (asset, holder) balance row of the token ledger.
// Authority is the only identity allowed to move funds out of the account.
type HoldingAccount struct {
	Asset     string
	Holder    string
	Authority string
	Balance   uint64
}

type tokenLedger struct {
	store   *badgerhold.Store
	breaker *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewTokenLedger returns a ports.TransferService backed by the given store,
// allowing at most rateLimit transfers per second.
func NewTokenLedger(
	store *badgerhold.Store, rateLimit int,
) ports.TransferService {
	return &tokenLedger{
		store:   store,
		breaker: circuitbreaker.NewCircuitBreaker("transfer"),
		limiter: ratelimit.New(rateLimit),
	}
}

func (l *tokenLedger) Transfer(
	ctx context.Context,
	asset, source, destination domain.Identity,
	authority ports.Authority,
	amount uint64,
) error {
	l.limiter.Take()
	_, err := l.breaker.Execute(func() (interface{}, error) {
		return nil, l.transfer(asset, source, destination, authority, amount)
	})
	return err
}

func (l *tokenLedger) OpenAccount(
	ctx context.Context, asset, holder, authority domain.Identity,
) error {
	key := accountKey(asset, holder)

	var existing HoldingAccount
	err := l.store.Get(key, &existing)
	if err == nil {
		if existing.Authority != authority.String() {
			return ErrAccountAlreadyExists
		}
		return nil
	}
	if err != badgerhold.ErrNotFound {
		return err
	}

	account := HoldingAccount{
		Asset:     asset.String(),
		Holder:    holder.String(),
		Authority: authority.String(),
	}
	return l.store.Insert(key, account)
}

// Fund credits the holding account of the given holder out of thin air,
// materializing it if needed. Only meant for local and regtest deployments.
func (l *tokenLedger) Fund(
	ctx context.Context, asset, holder domain.Identity, amount uint64,
) error {
	key := accountKey(asset, holder)

	var account HoldingAccount
	if err := l.store.Get(key, &account); err != nil {
		if err != badgerhold.ErrNotFound {
			return err
		}
		account = HoldingAccount{
			Asset:     asset.String(),
			Holder:    holder.String(),
			Authority: holder.String(),
		}
	}

	balance, ok := mathutil.CheckedAdd(account.Balance, amount)
	if !ok {
		return ErrBalanceOverflow
	}
	account.Balance = balance
	return l.store.Upsert(key, account)
}

func (l *tokenLedger) BalanceOf(
	ctx context.Context, asset, holder domain.Identity,
) (uint64, error) {
	var account HoldingAccount
	if err := l.store.Get(accountKey(asset, holder), &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

func (l *tokenLedger) transfer(
	asset, source, destination domain.Identity,
	authority ports.Authority,
	amount uint64,
) error {
	if err := verifyAuthority(authority); err != nil {
		return err
	}

	txn := l.store.Badger().NewTransaction(true)
	defer txn.Discard()

	srcKey := accountKey(asset, source)
	var src HoldingAccount
	if err := l.store.TxGet(txn, srcKey, &src); err != nil {
		if err == badgerhold.ErrNotFound {
			return ErrAccountNotFound
		}
		return err
	}
	if src.Authority != authority.Address.String() {
		return ErrUnauthorizedTransfer
	}

	srcBalance, ok := mathutil.CheckedSub(src.Balance, amount)
	if !ok {
		return ErrInsufficientBalance
	}

	// self-transfers change nothing once authorized
	if source == destination {
		return nil
	}

	dstKey := accountKey(asset, destination)
	var dst HoldingAccount
	if err := l.store.TxGet(txn, dstKey, &dst); err != nil {
		if err != badgerhold.ErrNotFound {
			return err
		}
		// destination accounts are materialized on first credit, controlled
		// by their holder
		dst = HoldingAccount{
			Asset:     asset.String(),
			Holder:    destination.String(),
			Authority: destination.String(),
		}
	}

	dstBalance, ok := mathutil.CheckedAdd(dst.Balance, amount)
	if !ok {
		return ErrBalanceOverflow
	}

	src.Balance = srcBalance
	dst.Balance = dstBalance
	if err := l.store.TxUpsert(txn, srcKey, src); err != nil {
		return err
	}
	if err := l.store.TxUpsert(txn, dstKey, dst); err != nil {
		return err
	}
	return txn.Commit()
}

// verifyAuthority checks the presented credential is self-consistent: a
// derived authority must re-derive to its claimed address from its seeds
// and bump, anything else must carry a caller-held signature.
func verifyAuthority(authority ports.Authority) error {
	if authority.IsDerived() {
		addr, err := derivation.DeriveWithBump(authority.Bump, authority.Seeds...)
		if err != nil || domain.Identity(addr) != authority.Address {
			return ErrUnauthorizedTransfer
		}
		return nil
	}
	if !authority.Signer {
		return ErrUnauthorizedTransfer
	}
	return nil
}

func accountKey(asset, holder domain.Identity) string {
	buf := []byte(fmt.Sprintf("%s:%s", asset, holder))
	return hex.EncodeToString(btcutil.Hash160(buf))
}
