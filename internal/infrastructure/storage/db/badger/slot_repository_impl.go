package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

// Slot is the storage representation of one addressable record slot.
type Slot struct {
	Address string
	Data    []byte
}

type slotRepositoryImpl struct {
	store *badgerhold.Store
}

func newSlotRepositoryImpl(store *badgerhold.Store) domain.SlotRepository {
	return slotRepositoryImpl{store}
}

func (s slotRepositoryImpl) GetSlot(
	ctx context.Context, address domain.Identity,
) ([]byte, error) {
	slot, err := s.getSlot(ctx, address)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, nil
	}
	return slot.Data, nil
}

func (s slotRepositoryImpl) GetOrCreateSlot(
	ctx context.Context, address domain.Identity, size int,
) ([]byte, error) {
	slot, err := s.getSlot(ctx, address)
	if err != nil {
		return nil, err
	}
	if slot != nil {
		return slot.Data, nil
	}

	newSlot := Slot{Address: address.String(), Data: make([]byte, size)}
	if err := s.insertSlot(ctx, newSlot); err != nil {
		return nil, err
	}
	return newSlot.Data, nil
}

func (s slotRepositoryImpl) UpdateSlot(
	ctx context.Context, address domain.Identity, data []byte,
) error {
	slot := Slot{Address: address.String(), Data: data}
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return s.store.TxUpsert(tx, slot.Address, slot)
	}
	return s.store.Upsert(slot.Address, slot)
}

func (s slotRepositoryImpl) getSlot(
	ctx context.Context, address domain.Identity,
) (*Slot, error) {
	var slot Slot
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = s.store.TxGet(tx, address.String(), &slot)
	} else {
		err = s.store.Get(address.String(), &slot)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (s slotRepositoryImpl) insertSlot(ctx context.Context, slot Slot) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return s.store.TxInsert(tx, slot.Address, slot)
	}
	return s.store.Insert(slot.Address, slot)
}
