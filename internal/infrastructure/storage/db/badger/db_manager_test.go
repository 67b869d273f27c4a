package dbbadger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	dbbadger "github.com/poolvault/poolvault-daemon/internal/infrastructure/storage/db/badger"
)

func identity(fill byte) domain.Identity {
	var id domain.Identity
	for i := range id {
		id[i] = fill
	}
	return id
}

func newTestDbManager(t *testing.T) ports.DbManager {
	t.Helper()
	dbManager, err := dbbadger.NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(dbManager.Close)
	return dbManager
}

func TestSlotRepository(t *testing.T) {
	dbManager := newTestDbManager(t)
	ctx := context.Background()
	slots := dbManager.SlotRepository()
	address := identity(0x01)

	data, err := slots.GetSlot(ctx, address)
	require.NoError(t, err)
	require.Nil(t, data)

	data, err = slots.GetOrCreateSlot(ctx, address, domain.VaultLen)
	require.NoError(t, err)
	require.Equal(t, make([]byte, domain.VaultLen), data)

	data[0] = 1
	require.NoError(t, slots.UpdateSlot(ctx, address, data))

	stored, err := slots.GetSlot(ctx, address)
	require.NoError(t, err)
	require.Equal(t, data, stored)
}

func TestRunTransactionRollsBackOnError(t *testing.T) {
	dbManager := newTestDbManager(t)
	ctx := context.Background()
	slots := dbManager.SlotRepository()
	address := identity(0x02)

	expectedErr := errors.New("something went wrong")
	_, err := dbManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			data, err := slots.GetOrCreateSlot(ctx, address, domain.VaultLen)
			require.NoError(t, err)

			data[0] = 1
			require.NoError(t, slots.UpdateSlot(ctx, address, data))
			return nil, expectedErr
		},
	)
	require.ErrorIs(t, err, expectedErr)

	data, err := slots.GetSlot(ctx, address)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestRunTransactionCommits(t *testing.T) {
	dbManager := newTestDbManager(t)
	ctx := context.Background()
	slots := dbManager.SlotRepository()
	address := identity(0x03)

	_, err := dbManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			data, err := slots.GetOrCreateSlot(ctx, address, domain.UserDepositLen)
			if err != nil {
				return nil, err
			}
			data[0] = 1
			return nil, slots.UpdateSlot(ctx, address, data)
		},
	)
	require.NoError(t, err)

	data, err := slots.GetSlot(ctx, address)
	require.NoError(t, err)
	require.Equal(t, byte(1), data[0])
}

func TestDepositRepository(t *testing.T) {
	dbManager := newTestDbManager(t)
	ctx := context.Background()
	repo := dbManager.DepositRepository()

	vault, otherVault := identity(0x0b), identity(0x0c)
	for i := 0; i < 15; i++ {
		deposit := domain.Deposit{
			ID:        uuid.New().String(),
			Vault:     vault,
			Depositor: identity(0x0a),
			Asset:     identity(0x01),
			Amount:    uint64(i + 1),
			Timestamp: time.Now().Unix(),
		}
		require.NoError(t, repo.AddDeposit(ctx, deposit))
	}
	require.NoError(t, repo.AddDeposit(ctx, domain.Deposit{
		ID:        uuid.New().String(),
		Vault:     otherVault,
		Depositor: identity(0x0a),
		Asset:     identity(0x01),
		Amount:    100,
		Timestamp: time.Now().Unix(),
	}))

	all, err := repo.ListAllDeposits(ctx)
	require.NoError(t, err)
	require.Len(t, all, 16)

	firstPage, err := repo.ListDepositsForVault(ctx, vault, domain.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, firstPage, 10)

	secondPage, err := repo.ListDepositsForVault(ctx, vault, domain.NewPage(2, 10))
	require.NoError(t, err)
	require.Len(t, secondPage, 5)
}

func TestWithdrawalRepository(t *testing.T) {
	dbManager := newTestDbManager(t)
	ctx := context.Background()
	repo := dbManager.WithdrawalRepository()

	vault := identity(0x0b)
	withdrawal := domain.Withdrawal{
		ID:        uuid.New().String(),
		Vault:     vault,
		Depositor: identity(0x0a),
		Asset:     identity(0x01),
		Amount:    50,
		Timestamp: time.Now().Unix(),
	}
	require.NoError(t, repo.AddWithdrawal(ctx, withdrawal))
	// inserting the same record twice is tolerated
	require.NoError(t, repo.AddWithdrawal(ctx, withdrawal))

	list, err := repo.ListWithdrawalsForVault(ctx, vault, domain.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, withdrawal, list[0])
}
