package domain

import "context"

type WithdrawalRepository interface {
	AddWithdrawal(ctx context.Context, withdrawal Withdrawal) error
	ListWithdrawalsForVault(ctx context.Context, vault Identity, page Page) ([]Withdrawal, error)
	ListAllWithdrawals(ctx context.Context) ([]Withdrawal, error)
}
