package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

func newDepositRepositoryImpl(store *badgerhold.Store) domain.DepositRepository {
	return depositRepositoryImpl{store}
}

func (d depositRepositoryImpl) AddDeposit(
	ctx context.Context, deposit domain.Deposit,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = d.store.TxInsert(tx, deposit.Key(), &deposit)
	} else {
		err = d.store.Insert(deposit.Key(), &deposit)
	}
	if err != nil && err != badgerhold.ErrKeyExists {
		return err
	}
	return nil
}

func (d depositRepositoryImpl) ListDepositsForVault(
	ctx context.Context, vault domain.Identity, page domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("Vault").Eq(vault)
	from := page.Number*page.Size - page.Size
	return d.findDeposits(ctx, query.Skip(from).Limit(page.Size))
}

func (d depositRepositoryImpl) ListAllDeposits(
	ctx context.Context,
) ([]domain.Deposit, error) {
	return d.findDeposits(ctx, nil)
}

func (d depositRepositoryImpl) findDeposits(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = d.store.TxFind(tx, &deposits, query)
	} else {
		err = d.store.Find(&deposits, query)
	}
	if err != nil {
		return nil, err
	}
	return deposits, nil
}
