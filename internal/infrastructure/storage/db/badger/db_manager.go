package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

// DbManager holds the badgerhold store backing the record slots and the
// operation history, and implements the transaction boundary every ledger
// invocation runs within.
type DbManager struct {
	store *badgerhold.Store

	slotRepository       domain.SlotRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
}

// NewDbManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (ports.DbManager, error) {
	store, err := createDb(filepath.Join(baseDbDir, "main"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening main db: %w", err)
	}

	return &DbManager{
		store:                store,
		slotRepository:       newSlotRepositoryImpl(store),
		depositRepository:    newDepositRepositoryImpl(store),
		withdrawalRepository: newWithdrawalRepositoryImpl(store),
	}, nil
}

func (d *DbManager) SlotRepository() domain.SlotRepository {
	return d.slotRepository
}

func (d *DbManager) DepositRepository() domain.DepositRepository {
	return d.depositRepository
}

func (d *DbManager) WithdrawalRepository() domain.WithdrawalRepository {
	return d.withdrawalRepository
}

func (d *DbManager) Close() {
	d.store.Close()
}

// NewTransaction implements the DbManager interface
func (d *DbManager) NewTransaction() ports.Transaction {
	return d.store.Badger().NewTransaction(true)
}

// RunTransaction runs the handler within a single badger transaction,
// committed only if the handler returns no error. The in-flight transaction
// travels to the repositories through the context.
func (d *DbManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	txn := d.store.Badger().NewTransaction(!readOnly)
	defer txn.Discard()

	res, err := handler(context.WithValue(ctx, "tx", txn))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := txn.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
