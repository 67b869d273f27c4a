package application_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	"github.com/poolvault/poolvault-daemon/pkg/derivation"
)

type transferCall struct {
	asset       domain.Identity
	source      domain.Identity
	destination domain.Identity
	authority   ports.Authority
	amount      uint64
}

type mockTransferExecutor struct {
	calls []transferCall
	err   error
}

func (m *mockTransferExecutor) Transfer(
	_ context.Context,
	asset, source, destination domain.Identity,
	authority ports.Authority,
	amount uint64,
) error {
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, transferCall{asset, source, destination, authority, amount})
	return nil
}

func identity(fill byte) domain.Identity {
	var id domain.Identity
	for i := range id {
		id[i] = fill
	}
	return id
}

var (
	depositor   = identity(0x0a)
	vaultAddr   = identity(0x0b)
	assetID     = identity(0x0c)
	poolAccount = identity(0x0d)
)

func userDepositAddr(t *testing.T, depositor, vault domain.Identity) domain.Identity {
	t.Helper()
	addr, _, err := derivation.Derive(
		[]byte(domain.UserVaultSeed), depositor[:], vault[:],
	)
	require.NoError(t, err)
	return domain.Identity(addr)
}

func createVaultAccounts() []*ports.Account {
	return []*ports.Account{
		{Address: depositor, Signer: true},
		{Address: vaultAddr, Data: make([]byte, domain.VaultLen), Writable: true},
		{Address: assetID},
		{Address: poolAccount},
	}
}

// initializedVaultSlot returns a vault slot holding a freshly created vault.
func initializedVaultSlot(t *testing.T) *ports.Account {
	t.Helper()
	accounts := createVaultAccounts()
	processor := application.NewProcessor(&mockTransferExecutor{})
	err := processor.Process(
		context.Background(), accounts,
		application.Instruction{Tag: application.CreateVaultTag}.Bytes(),
	)
	require.NoError(t, err)
	return accounts[1]
}

func mutationAccounts(t *testing.T, vaultSlot *ports.Account) []*ports.Account {
	t.Helper()
	return []*ports.Account{
		{Address: depositor, Signer: true},
		vaultSlot,
		{
			Address:  userDepositAddr(t, depositor, vaultAddr),
			Data:     make([]byte, domain.UserDepositLen),
			Writable: true,
		},
		{Address: depositor},
	}
}

func depositPayload(amount uint64) []byte {
	return application.Instruction{Tag: application.DepositTag, Amount: amount}.Bytes()
}

func withdrawPayload(amount uint64) []byte {
	return application.Instruction{Tag: application.WithdrawTag, Amount: amount}.Bytes()
}

func TestCreateVault(t *testing.T) {
	t.Parallel()

	executor := &mockTransferExecutor{}
	processor := application.NewProcessor(executor)
	accounts := createVaultAccounts()

	err := processor.Process(
		context.Background(), accounts,
		application.Instruction{Tag: application.CreateVaultTag}.Bytes(),
	)
	require.NoError(t, err)

	vault, err := domain.DecodeVault(accounts[1].Data)
	require.NoError(t, err)
	require.True(t, vault.IsInitialized())
	require.Equal(t, depositor, vault.Owner)
	require.Equal(t, assetID, vault.Asset)
	require.Equal(t, poolAccount, vault.PoolAccount)
	require.Zero(t, vault.TotalDeposits)
	require.Empty(t, executor.calls)
}

func TestCreateVaultAlreadyInitialized(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	accounts := createVaultAccounts()
	payload := application.Instruction{Tag: application.CreateVaultTag}.Bytes()

	require.NoError(t, processor.Process(context.Background(), accounts, payload))

	snapshot := append([]byte{}, accounts[1].Data...)

	// re-running with a different requester must not touch the record
	accounts[0] = &ports.Account{Address: identity(0xee), Signer: true}
	err := processor.Process(context.Background(), accounts, payload)
	require.EqualError(t, err, domain.ErrVaultAlreadyInitialized.Error())
	require.Equal(t, snapshot, accounts[1].Data)
}

func TestCreateVaultUnauthorized(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	accounts := createVaultAccounts()
	accounts[0].Signer = false

	err := processor.Process(
		context.Background(), accounts,
		application.Instruction{Tag: application.CreateVaultTag}.Bytes(),
	)
	require.EqualError(t, err, domain.ErrUnauthorized.Error())
	require.Equal(t, make([]byte, domain.VaultLen), accounts[1].Data)
}

func TestDepositWithdrawScenario(t *testing.T) {
	t.Parallel()

	executor := &mockTransferExecutor{}
	processor := application.NewProcessor(executor)
	ctx := context.Background()

	accounts := mutationAccounts(t, initializedVaultSlot(t))

	require.NoError(t, processor.Process(ctx, accounts, depositPayload(100)))
	require.NoError(t, processor.Process(ctx, accounts, depositPayload(50)))

	vault, err := domain.DecodeVault(accounts[1].Data)
	require.NoError(t, err)
	userDeposit, err := domain.DecodeUserDeposit(accounts[2].Data)
	require.NoError(t, err)
	require.Equal(t, uint64(150), vault.TotalDeposits)
	require.Equal(t, uint64(150), userDeposit.Amount)
	require.True(t, userDeposit.IsInitialized())
	require.Equal(t, depositor, userDeposit.Depositor)
	require.Equal(t, vaultAddr, userDeposit.Vault)

	// deposits move depositor -> pool, authorized by the depositor itself
	require.Len(t, executor.calls, 2)
	require.Equal(t, assetID, executor.calls[0].asset)
	require.Equal(t, depositor, executor.calls[0].source)
	require.Equal(t, poolAccount, executor.calls[0].destination)
	require.True(t, executor.calls[0].authority.Signer)
	require.Equal(t, depositor, executor.calls[0].authority.Address)

	// over-withdrawal fails and leaves everything untouched
	vaultSnapshot := append([]byte{}, accounts[1].Data...)
	userSnapshot := append([]byte{}, accounts[2].Data...)
	err = processor.Process(ctx, accounts, withdrawPayload(200))
	require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
	require.Equal(t, vaultSnapshot, accounts[1].Data)
	require.Equal(t, userSnapshot, accounts[2].Data)
	require.Len(t, executor.calls, 2)

	// withdrawing the whole claim zeroes both records
	require.NoError(t, processor.Process(ctx, accounts, withdrawPayload(150)))

	vault, err = domain.DecodeVault(accounts[1].Data)
	require.NoError(t, err)
	userDeposit, err = domain.DecodeUserDeposit(accounts[2].Data)
	require.NoError(t, err)
	require.Zero(t, vault.TotalDeposits)
	require.Zero(t, userDeposit.Amount)
	require.True(t, userDeposit.IsInitialized())

	// withdrawals move pool -> destination under the vault's derived authority
	require.Len(t, executor.calls, 3)
	withdrawal := executor.calls[2]
	require.Equal(t, poolAccount, withdrawal.source)
	require.Equal(t, depositor, withdrawal.destination)
	require.True(t, withdrawal.authority.IsDerived())

	expectedAuthority, bump, err := derivation.Derive([]byte(domain.VaultAuthoritySeed))
	require.NoError(t, err)
	require.Equal(t, domain.Identity(expectedAuthority), withdrawal.authority.Address)
	require.Equal(t, bump, withdrawal.authority.Bump)
	require.Equal(t, [][]byte{[]byte(domain.VaultAuthoritySeed)}, withdrawal.authority.Seeds)
}

func TestDepositOverflow(t *testing.T) {
	t.Parallel()

	executor := &mockTransferExecutor{}
	processor := application.NewProcessor(executor)
	ctx := context.Background()

	accounts := mutationAccounts(t, initializedVaultSlot(t))
	require.NoError(t, processor.Process(ctx, accounts, depositPayload(math.MaxUint64)))

	vaultSnapshot := append([]byte{}, accounts[1].Data...)
	userSnapshot := append([]byte{}, accounts[2].Data...)

	err := processor.Process(ctx, accounts, depositPayload(1))
	require.EqualError(t, err, domain.ErrAmountOverflow.Error())
	require.Equal(t, vaultSnapshot, accounts[1].Data)
	require.Equal(t, userSnapshot, accounts[2].Data)
	// the failed deposit never reached the transfer primitive
	require.Len(t, executor.calls, 1)
}

func TestDepositSpoofedUserSlot(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	accounts := mutationAccounts(t, initializedVaultSlot(t))
	accounts[2].Address = identity(0xff)

	err := processor.Process(context.Background(), accounts, depositPayload(100))
	require.EqualError(t, err, domain.ErrInvalidAccountAddress.Error())

	err = processor.Process(context.Background(), accounts, withdrawPayload(100))
	require.EqualError(t, err, domain.ErrInvalidAccountAddress.Error())
}

func TestDepositVaultNotInitialized(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	vaultSlot := &ports.Account{
		Address:  vaultAddr,
		Data:     make([]byte, domain.VaultLen),
		Writable: true,
	}
	accounts := mutationAccounts(t, vaultSlot)

	err := processor.Process(context.Background(), accounts, depositPayload(100))
	require.EqualError(t, err, domain.ErrVaultNotInitialized.Error())
}

func TestDepositUnauthorized(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	accounts := mutationAccounts(t, initializedVaultSlot(t))
	accounts[0].Signer = false

	err := processor.Process(context.Background(), accounts, depositPayload(100))
	require.EqualError(t, err, domain.ErrUnauthorized.Error())
}

func TestWithdrawWithoutClaimRecord(t *testing.T) {
	t.Parallel()

	processor := application.NewProcessor(&mockTransferExecutor{})
	accounts := mutationAccounts(t, initializedVaultSlot(t))

	err := processor.Process(context.Background(), accounts, withdrawPayload(1))
	require.EqualError(t, err, domain.ErrInvalidRecordData.Error())
}

func TestTransferErrorPropagatesVerbatim(t *testing.T) {
	t.Parallel()

	transferErr := errors.New("holding account is frozen")
	executor := &mockTransferExecutor{err: transferErr}
	processor := application.NewProcessor(executor)

	accounts := mutationAccounts(t, initializedVaultSlot(t))
	vaultSnapshot := append([]byte{}, accounts[1].Data...)
	userSnapshot := append([]byte{}, accounts[2].Data...)

	err := processor.Process(context.Background(), accounts, depositPayload(100))
	require.ErrorIs(t, err, transferErr)
	require.Equal(t, vaultSnapshot, accounts[1].Data)
	require.Equal(t, userSnapshot, accounts[2].Data)
}

func TestTotalMatchesSumOfClaims(t *testing.T) {
	t.Parallel()

	executor := &mockTransferExecutor{}
	processor := application.NewProcessor(executor)
	ctx := context.Background()

	vaultSlot := initializedVaultSlot(t)

	depositors := []domain.Identity{identity(0x0a), identity(0x11), identity(0x22)}
	slots := make(map[domain.Identity]*ports.Account)
	for _, d := range depositors {
		slots[d] = &ports.Account{
			Address:  userDepositAddr(t, d, vaultAddr),
			Data:     make([]byte, domain.UserDepositLen),
			Writable: true,
		}
	}

	process := func(d domain.Identity, payload []byte) error {
		accounts := []*ports.Account{
			{Address: d, Signer: true},
			vaultSlot,
			slots[d],
			{Address: d},
		}
		return processor.Process(ctx, accounts, payload)
	}

	require.NoError(t, process(depositors[0], depositPayload(100)))
	require.NoError(t, process(depositors[1], depositPayload(250)))
	require.NoError(t, process(depositors[2], depositPayload(50)))
	require.NoError(t, process(depositors[1], withdrawPayload(200)))
	require.NoError(t, process(depositors[0], depositPayload(25)))

	vault, err := domain.DecodeVault(vaultSlot.Data)
	require.NoError(t, err)

	var sum uint64
	for _, d := range depositors {
		userDeposit, err := domain.DecodeUserDeposit(slots[d].Data)
		require.NoError(t, err)
		sum += userDeposit.Amount
	}
	require.Equal(t, vault.TotalDeposits, sum)
	require.Equal(t, uint64(225), sum)
}
