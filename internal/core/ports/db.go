package ports

import (
	"context"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

// DbManager interface defines the access points to the repositories and the
// transaction boundary every ledger invocation runs within.
type DbManager interface {
	SlotRepository() domain.SlotRepository
	DepositRepository() domain.DepositRepository
	WithdrawalRepository() domain.WithdrawalRepository

	Close()

	NewTransaction() Transaction
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}

// Transaction interface defines the method to commit or discard a database transaction.
type Transaction interface {
	Commit() error
	Discard()
}
