package domain

import (
	"github.com/poolvault/poolvault-daemon/pkg/bufferutil"
	"github.com/poolvault/poolvault-daemon/pkg/mathutil"
)

// VaultLen is the fixed byte length of a serialized Vault record:
// initialized flag, owner, asset, pool account, total deposits.
const VaultLen = 1 + IdentityLen*3 + 8

// Vault is the shared pooled-fund ledger record for one asset type. It
// tracks the aggregate of all outstanding per-depositor claims, while the
// pooled funds themselves sit in the externally-managed pool account.
type Vault struct {
	Initialized   bool
	Owner         Identity
	Asset         Identity
	PoolAccount   Identity
	TotalDeposits uint64
}

// NewVault returns an initialized Vault record with an empty pool.
func NewVault(owner, asset, poolAccount Identity) *Vault {
	return &Vault{
		Initialized: true,
		Owner:       owner,
		Asset:       asset,
		PoolAccount: poolAccount,
	}
}

// Bytes encodes the record to its fixed-width wire format.
func (v *Vault) Bytes() []byte {
	buf := make([]byte, VaultLen)
	buf[0] = bufferutil.BoolToByte(v.Initialized)
	copy(buf[1:33], v.Owner[:])
	copy(buf[33:65], v.Asset[:])
	copy(buf[65:97], v.PoolAccount[:])
	copy(buf[97:], bufferutil.ValueToBytes(v.TotalDeposits))
	return buf
}

// DecodeVault decodes a fixed-width Vault record. A zero-filled buffer is
// valid and decodes to an uninitialized record; any other length than
// VaultLen fails with ErrInvalidRecordData.
func DecodeVault(buf []byte) (*Vault, error) {
	if len(buf) != VaultLen {
		return nil, ErrInvalidRecordData
	}

	v := &Vault{Initialized: bufferutil.BoolFromByte(buf[0])}
	copy(v.Owner[:], buf[1:33])
	copy(v.Asset[:], buf[33:65])
	copy(v.PoolAccount[:], buf[65:97])
	v.TotalDeposits = bufferutil.ValueFromBytes(buf[97:])
	return v, nil
}

// IsInitialized ...
func (v *Vault) IsInitialized() bool {
	return v.Initialized
}

// Credit adds amount to the vault-wide total with overflow checking.
func (v *Vault) Credit(amount uint64) error {
	total, ok := mathutil.CheckedAdd(v.TotalDeposits, amount)
	if !ok {
		return ErrAmountOverflow
	}
	v.TotalDeposits = total
	return nil
}

// Debit subtracts amount from the vault-wide total. Debiting more than the
// outstanding total fails with ErrInsufficientFunds.
func (v *Vault) Debit(amount uint64) error {
	total, ok := mathutil.CheckedSub(v.TotalDeposits, amount)
	if !ok {
		return ErrInsufficientFunds
	}
	v.TotalDeposits = total
	return nil
}
