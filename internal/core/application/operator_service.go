package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	"github.com/poolvault/poolvault-daemon/pkg/derivation"
)

// OperatorService defines the methods of the application layer exposed to
// the operator CLI. It assembles the working set of account slots of every
// ledger invocation from the slot store, runs the processor within a single
// db transaction and records the operation history.
type OperatorService interface {
	CreateVault(
		ctx context.Context,
		requester, vaultAddress, asset, poolAccount domain.Identity,
	) error
	Deposit(
		ctx context.Context,
		requester, vaultAddress domain.Identity,
		amount uint64,
	) error
	Withdraw(
		ctx context.Context,
		requester, vaultAddress, destination domain.Identity,
		amount uint64,
	) error
	GetBalance(
		ctx context.Context,
		requester, vaultAddress domain.Identity,
	) (*BalanceInfo, error)
	ListDeposits(
		ctx context.Context,
		vaultAddress domain.Identity,
		page domain.Page,
	) ([]domain.Deposit, error)
	ListWithdrawals(
		ctx context.Context,
		vaultAddress domain.Identity,
		page domain.Page,
	) ([]domain.Withdrawal, error)
}

type operatorService struct {
	repoManager ports.DbManager
	transferSvc ports.TransferService
	processor   *Processor
}

func NewOperatorService(
	repoManager ports.DbManager, transferSvc ports.TransferService,
) OperatorService {
	return &operatorService{
		repoManager: repoManager,
		transferSvc: transferSvc,
		processor:   NewProcessor(transferSvc),
	}
}

func (o *operatorService) CreateVault(
	ctx context.Context,
	requester, vaultAddress, asset, poolAccount domain.Identity,
) error {
	authorityAddr, _, err := derivation.Derive([]byte(domain.VaultAuthoritySeed))
	if err != nil {
		return err
	}
	authority := domain.Identity(authorityAddr)

	// without an explicit pool account the pooled funds are held directly
	// by the vault authority
	if poolAccount.IsZero() {
		poolAccount = authority
	}
	if err := o.transferSvc.OpenAccount(ctx, asset, poolAccount, authority); err != nil {
		return err
	}

	payload := Instruction{Tag: CreateVaultTag}.Bytes()

	if _, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			slots := o.repoManager.SlotRepository()
			vaultData, err := slots.GetOrCreateSlot(ctx, vaultAddress, domain.VaultLen)
			if err != nil {
				return nil, err
			}

			accounts := []*ports.Account{
				{Address: requester, Signer: true},
				{Address: vaultAddress, Data: vaultData, Writable: true},
				{Address: asset},
				{Address: poolAccount},
			}
			if err := o.processor.Process(ctx, accounts, payload); err != nil {
				return nil, err
			}

			if err := slots.UpdateSlot(ctx, vaultAddress, vaultData); err != nil {
				return nil, err
			}
			return nil, nil
		},
	); err != nil {
		return err
	}

	log.WithField("vault", vaultAddress).
		WithField("asset", asset).
		WithField("pool", poolAccount).
		Info("vault created")
	return nil
}

func (o *operatorService) Deposit(
	ctx context.Context,
	requester, vaultAddress domain.Identity,
	amount uint64,
) error {
	userAddress, err := userDepositAddress(requester, vaultAddress)
	if err != nil {
		return err
	}

	payload := Instruction{Tag: DepositTag, Amount: amount}.Bytes()

	_, err = o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			slots := o.repoManager.SlotRepository()
			vaultData, err := slots.GetOrCreateSlot(ctx, vaultAddress, domain.VaultLen)
			if err != nil {
				return nil, err
			}
			userData, err := slots.GetOrCreateSlot(ctx, userAddress, domain.UserDepositLen)
			if err != nil {
				return nil, err
			}

			accounts := []*ports.Account{
				{Address: requester, Signer: true},
				{Address: vaultAddress, Data: vaultData, Writable: true},
				{Address: userAddress, Data: userData, Writable: true},
				// the depositor's own holding account funds the transfer
				{Address: requester},
			}
			if err := o.processor.Process(ctx, accounts, payload); err != nil {
				return nil, err
			}

			if err := slots.UpdateSlot(ctx, vaultAddress, vaultData); err != nil {
				return nil, err
			}
			if err := slots.UpdateSlot(ctx, userAddress, userData); err != nil {
				return nil, err
			}

			vault, err := domain.DecodeVault(vaultData)
			if err != nil {
				return nil, err
			}
			deposit := domain.Deposit{
				ID:        uuid.New().String(),
				Vault:     vaultAddress,
				Depositor: requester,
				Asset:     vault.Asset,
				Amount:    amount,
				Timestamp: time.Now().Unix(),
			}
			if err := o.repoManager.DepositRepository().AddDeposit(ctx, deposit); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)
	return err
}

func (o *operatorService) Withdraw(
	ctx context.Context,
	requester, vaultAddress, destination domain.Identity,
	amount uint64,
) error {
	userAddress, err := userDepositAddress(requester, vaultAddress)
	if err != nil {
		return err
	}
	// funds go back to the requester's holding account unless an explicit
	// destination is given
	if destination.IsZero() {
		destination = requester
	}

	payload := Instruction{Tag: WithdrawTag, Amount: amount}.Bytes()

	_, err = o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			slots := o.repoManager.SlotRepository()
			vaultData, err := slots.GetOrCreateSlot(ctx, vaultAddress, domain.VaultLen)
			if err != nil {
				return nil, err
			}
			userData, err := slots.GetOrCreateSlot(ctx, userAddress, domain.UserDepositLen)
			if err != nil {
				return nil, err
			}

			accounts := []*ports.Account{
				{Address: requester, Signer: true},
				{Address: vaultAddress, Data: vaultData, Writable: true},
				{Address: userAddress, Data: userData, Writable: true},
				{Address: destination},
			}
			if err := o.processor.Process(ctx, accounts, payload); err != nil {
				return nil, err
			}

			if err := slots.UpdateSlot(ctx, vaultAddress, vaultData); err != nil {
				return nil, err
			}
			if err := slots.UpdateSlot(ctx, userAddress, userData); err != nil {
				return nil, err
			}

			vault, err := domain.DecodeVault(vaultData)
			if err != nil {
				return nil, err
			}
			withdrawal := domain.Withdrawal{
				ID:        uuid.New().String(),
				Vault:     vaultAddress,
				Depositor: requester,
				Asset:     vault.Asset,
				Amount:    amount,
				Timestamp: time.Now().Unix(),
			}
			if err := o.repoManager.WithdrawalRepository().AddWithdrawal(
				ctx, withdrawal,
			); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)
	return err
}

func (o *operatorService) GetBalance(
	ctx context.Context,
	requester, vaultAddress domain.Identity,
) (*BalanceInfo, error) {
	userAddress, err := userDepositAddress(requester, vaultAddress)
	if err != nil {
		return nil, err
	}

	res, err := o.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			slots := o.repoManager.SlotRepository()

			vaultData, err := slots.GetSlot(ctx, vaultAddress)
			if err != nil {
				return nil, err
			}
			if vaultData == nil {
				return nil, domain.ErrVaultNotInitialized
			}
			vault, err := domain.DecodeVault(vaultData)
			if err != nil {
				return nil, err
			}
			if !vault.IsInitialized() {
				return nil, domain.ErrVaultNotInitialized
			}

			info := &BalanceInfo{
				Asset:         vault.Asset,
				PoolAccount:   vault.PoolAccount,
				TotalDeposits: vault.TotalDeposits,
			}

			userData, err := slots.GetSlot(ctx, userAddress)
			if err != nil {
				return nil, err
			}
			if userData != nil {
				userDeposit, err := domain.DecodeUserDeposit(userData)
				if err != nil {
					return nil, err
				}
				info.UserAmount = userDeposit.Amount
			}
			return info, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*BalanceInfo), nil
}

func (o *operatorService) ListDeposits(
	ctx context.Context, vaultAddress domain.Identity, page domain.Page,
) ([]domain.Deposit, error) {
	return o.repoManager.DepositRepository().ListDepositsForVault(
		ctx, vaultAddress, page,
	)
}

func (o *operatorService) ListWithdrawals(
	ctx context.Context, vaultAddress domain.Identity, page domain.Page,
) ([]domain.Withdrawal, error) {
	return o.repoManager.WithdrawalRepository().ListWithdrawalsForVault(
		ctx, vaultAddress, page,
	)
}

// userDepositAddress computes the canonical address of the claim record of
// the given (depositor, vault) pair.
func userDepositAddress(
	depositor, vaultAddress domain.Identity,
) (domain.Identity, error) {
	addr, _, err := derivation.Derive(
		[]byte(domain.UserVaultSeed), depositor[:], vaultAddress[:],
	)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity(addr), nil
}
