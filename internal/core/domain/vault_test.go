package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poolvault/poolvault-daemon/internal/core/domain"
)

func identity(fill byte) domain.Identity {
	var id domain.Identity
	for i := range id {
		id[i] = fill
	}
	return id
}

func TestVaultRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		vault *domain.Vault
	}{
		{
			"initialized empty pool",
			domain.NewVault(identity(0x01), identity(0x02), identity(0x03)),
		},
		{
			"initialized with funds",
			&domain.Vault{
				Initialized:   true,
				Owner:         identity(0xaa),
				Asset:         identity(0xbb),
				PoolAccount:   identity(0xcc),
				TotalDeposits: 150,
			},
		},
		{
			"max total",
			&domain.Vault{
				Initialized:   true,
				Owner:         identity(0x01),
				Asset:         identity(0x02),
				PoolAccount:   identity(0x03),
				TotalDeposits: math.MaxUint64,
			},
		},
		{
			"uninitialized",
			&domain.Vault{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := tt.vault.Bytes()
			require.Len(t, buf, domain.VaultLen)

			decoded, err := domain.DecodeVault(buf)
			require.NoError(t, err)
			require.Equal(t, tt.vault, decoded)
		})
	}
}

func TestDecodeVaultZeroBuffer(t *testing.T) {
	t.Parallel()

	vault, err := domain.DecodeVault(make([]byte, domain.VaultLen))
	require.NoError(t, err)
	require.False(t, vault.IsInitialized())
	require.True(t, vault.Owner.IsZero())
	require.True(t, vault.Asset.IsZero())
	require.True(t, vault.PoolAccount.IsZero())
	require.Zero(t, vault.TotalDeposits)
}

func TestDecodeVaultBadLength(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, domain.VaultLen - 1, domain.VaultLen + 1} {
		vault, err := domain.DecodeVault(make([]byte, size))
		require.Nil(t, vault)
		require.EqualError(t, err, domain.ErrInvalidRecordData.Error())
	}
}

func TestDecodeVaultNonCanonicalFlag(t *testing.T) {
	t.Parallel()

	buf := make([]byte, domain.VaultLen)
	buf[0] = 0xff

	vault, err := domain.DecodeVault(buf)
	require.NoError(t, err)
	require.True(t, vault.IsInitialized())

	// re-encoding normalizes the flag to exactly 1
	require.Equal(t, byte(1), vault.Bytes()[0])
}

func TestVaultCredit(t *testing.T) {
	t.Parallel()

	vault := domain.NewVault(identity(0x01), identity(0x02), identity(0x03))
	require.NoError(t, vault.Credit(100))
	require.NoError(t, vault.Credit(50))
	require.Equal(t, uint64(150), vault.TotalDeposits)

	err := vault.Credit(math.MaxUint64)
	require.EqualError(t, err, domain.ErrAmountOverflow.Error())
	require.Equal(t, uint64(150), vault.TotalDeposits)
}

func TestVaultDebit(t *testing.T) {
	t.Parallel()

	vault := domain.NewVault(identity(0x01), identity(0x02), identity(0x03))
	require.NoError(t, vault.Credit(150))

	err := vault.Debit(200)
	require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
	require.Equal(t, uint64(150), vault.TotalDeposits)

	require.NoError(t, vault.Debit(150))
	require.Zero(t, vault.TotalDeposits)
}
