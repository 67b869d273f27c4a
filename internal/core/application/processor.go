package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	"github.com/poolvault/poolvault-daemon/pkg/derivation"
)

// Number and order of the account slots each operation declares. The
// requester always comes first and must be a signer; mutated slots must be
// writable.
//
//	CreateVault: requester, vault, asset, pool account
//	Deposit:     requester, vault, user deposit, source holding account
//	Withdraw:    requester, vault, user deposit, destination holding account
const numRequiredAccounts = 4

// Processor is the ledger state machine. It turns a decoded instruction and
// its working set of account slots into validated record mutations plus one
// authorized transfer, delegated to the external executor.
//
// Every precondition, including balance sufficiency on both the vault and
// the per-user record, is checked before any slot byte is written and
// before the transfer primitive is invoked: a failed operation leaves the
// working set untouched.
type Processor struct {
	executor ports.TransferExecutor
}

func NewProcessor(executor ports.TransferExecutor) *Processor {
	return &Processor{executor: executor}
}

// Process decodes the payload and dispatches to the matching operation.
func (p *Processor) Process(
	ctx context.Context, accounts []*ports.Account, payload []byte,
) error {
	instruction, err := DecodeInstruction(payload)
	if err != nil {
		return err
	}
	if len(accounts) < numRequiredAccounts {
		return ErrInvalidAccountList
	}

	switch instruction.Tag {
	case CreateVaultTag:
		return p.createVault(accounts)
	case DepositTag:
		return p.deposit(ctx, accounts, instruction.Amount)
	default:
		return p.withdraw(ctx, accounts, instruction.Amount)
	}
}

func (p *Processor) createVault(accounts []*ports.Account) error {
	requester, vaultSlot, asset, poolAccount :=
		accounts[0], accounts[1], accounts[2], accounts[3]

	if !requester.IsSigner() {
		return domain.ErrUnauthorized
	}
	if !vaultSlot.Writable {
		return ErrAccountNotWritable
	}

	vault, err := domain.DecodeVault(vaultSlot.Data)
	if err != nil {
		return err
	}
	if vault.IsInitialized() {
		return domain.ErrVaultAlreadyInitialized
	}

	newVault := domain.NewVault(requester.Address, asset.Address, poolAccount.Address)
	copy(vaultSlot.Data, newVault.Bytes())

	log.WithField("vault", vaultSlot.Address).Debug("vault initialized")
	return nil
}

func (p *Processor) deposit(
	ctx context.Context, accounts []*ports.Account, amount uint64,
) error {
	requester, vaultSlot, userSlot, source :=
		accounts[0], accounts[1], accounts[2], accounts[3]

	vault, userDeposit, err := p.validateMutation(requester, vaultSlot, userSlot)
	if err != nil {
		return err
	}
	if !userDeposit.IsInitialized() {
		userDeposit = domain.NewUserDeposit(requester.Address, vaultSlot.Address)
	}

	if err := vault.Credit(amount); err != nil {
		return err
	}
	if err := userDeposit.Credit(amount); err != nil {
		return err
	}

	// the depositor moves its own funds, so its signature is the credential
	if err := p.executor.Transfer(
		ctx,
		vault.Asset, source.Address, vault.PoolAccount,
		ports.SignerAuthority(requester.Address),
		amount,
	); err != nil {
		return err
	}

	copy(vaultSlot.Data, vault.Bytes())
	copy(userSlot.Data, userDeposit.Bytes())

	log.WithField("vault", vaultSlot.Address).
		WithField("depositor", requester.Address).
		Debugf("deposited %d", amount)
	return nil
}

func (p *Processor) withdraw(
	ctx context.Context, accounts []*ports.Account, amount uint64,
) error {
	requester, vaultSlot, userSlot, destination :=
		accounts[0], accounts[1], accounts[2], accounts[3]

	vault, userDeposit, err := p.validateMutation(requester, vaultSlot, userSlot)
	if err != nil {
		return err
	}
	// unlike Deposit, a claim record must already exist to withdraw from it
	if !userDeposit.IsInitialized() {
		return domain.ErrInvalidRecordData
	}

	if err := vault.Debit(amount); err != nil {
		return err
	}
	if err := userDeposit.Debit(amount); err != nil {
		return err
	}

	// pooled funds are controlled by the vault itself: the reproducible
	// (seeds, bump) pair is the credential the executor verifies
	authorityAddr, bump, err := derivation.Derive([]byte(domain.VaultAuthoritySeed))
	if err != nil {
		return err
	}
	authority := ports.DerivedAuthority(
		domain.Identity(authorityAddr), bump, []byte(domain.VaultAuthoritySeed),
	)

	if err := p.executor.Transfer(
		ctx,
		vault.Asset, vault.PoolAccount, destination.Address,
		authority,
		amount,
	); err != nil {
		return err
	}

	copy(vaultSlot.Data, vault.Bytes())
	copy(userSlot.Data, userDeposit.Bytes())

	log.WithField("vault", vaultSlot.Address).
		WithField("depositor", requester.Address).
		Debugf("withdrawn %d", amount)
	return nil
}

// validateMutation runs the checks shared by Deposit and Withdraw: signer
// capability, slot writability, vault initialization and the anti-spoofing
// derived-address check on the user deposit slot.
func (p *Processor) validateMutation(
	requester, vaultSlot, userSlot *ports.Account,
) (*domain.Vault, *domain.UserDeposit, error) {
	if !requester.IsSigner() {
		return nil, nil, domain.ErrUnauthorized
	}
	if !vaultSlot.Writable || !userSlot.Writable {
		return nil, nil, ErrAccountNotWritable
	}

	vault, err := domain.DecodeVault(vaultSlot.Data)
	if err != nil {
		return nil, nil, err
	}
	if !vault.IsInitialized() {
		return nil, nil, domain.ErrVaultNotInitialized
	}

	expectedAddr, _, err := derivation.Derive(
		[]byte(domain.UserVaultSeed),
		requester.Address[:],
		vaultSlot.Address[:],
	)
	if err != nil {
		return nil, nil, err
	}
	if !userSlot.HasAddress(domain.Identity(expectedAddr)) {
		return nil, nil, domain.ErrInvalidAccountAddress
	}

	userDeposit, err := domain.DecodeUserDeposit(userSlot.Data)
	if err != nil {
		return nil, nil, err
	}
	return vault, userDeposit, nil
}
