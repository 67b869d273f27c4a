package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

type withdrawalRepositoryImpl struct {
	store *badgerhold.Store
}

func newWithdrawalRepositoryImpl(store *badgerhold.Store) domain.WithdrawalRepository {
	return withdrawalRepositoryImpl{store}
}

func (w withdrawalRepositoryImpl) AddWithdrawal(
	ctx context.Context, withdrawal domain.Withdrawal,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.store.TxInsert(tx, withdrawal.Key(), &withdrawal)
	} else {
		err = w.store.Insert(withdrawal.Key(), &withdrawal)
	}
	if err != nil && err != badgerhold.ErrKeyExists {
		return err
	}
	return nil
}

func (w withdrawalRepositoryImpl) ListWithdrawalsForVault(
	ctx context.Context, vault domain.Identity, page domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("Vault").Eq(vault)
	from := page.Number*page.Size - page.Size
	return w.findWithdrawals(ctx, query.Skip(from).Limit(page.Size))
}

func (w withdrawalRepositoryImpl) ListAllWithdrawals(
	ctx context.Context,
) ([]domain.Withdrawal, error) {
	return w.findWithdrawals(ctx, nil)
}

func (w withdrawalRepositoryImpl) findWithdrawals(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.store.TxFind(tx, &withdrawals, query)
	} else {
		err = w.store.Find(&withdrawals, query)
	}
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}
