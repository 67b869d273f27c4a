package domain

import "context"

type DepositRepository interface {
	AddDeposit(ctx context.Context, deposit Deposit) error
	ListDepositsForVault(ctx context.Context, vault Identity, page Page) ([]Deposit, error)
	ListAllDeposits(ctx context.Context) ([]Deposit, error)
}
