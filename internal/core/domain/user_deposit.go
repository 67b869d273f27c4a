package domain

import (
	"github.com/poolvault/poolvault-daemon/pkg/bufferutil"
	"github.com/poolvault/poolvault-daemon/pkg/mathutil"
)

// UserDepositLen is the fixed byte length of a serialized UserDeposit
// record: initialized flag, depositor, vault back-reference, amount.
const UserDepositLen = 1 + IdentityLen*2 + 8

// UserDeposit is one depositor's outstanding claim against a Vault. It is
// lazily materialized on the depositor's first deposit and addressed by
// deriving ("user_vault", depositor, vault address).
type UserDeposit struct {
	Initialized bool
	Depositor   Identity
	Vault       Identity
	Amount      uint64
}

// NewUserDeposit returns an initialized zero-balance claim record for the
// given (depositor, vault) pair.
func NewUserDeposit(depositor, vault Identity) *UserDeposit {
	return &UserDeposit{
		Initialized: true,
		Depositor:   depositor,
		Vault:       vault,
	}
}

// Bytes encodes the record to its fixed-width wire format.
func (u *UserDeposit) Bytes() []byte {
	buf := make([]byte, UserDepositLen)
	buf[0] = bufferutil.BoolToByte(u.Initialized)
	copy(buf[1:33], u.Depositor[:])
	copy(buf[33:65], u.Vault[:])
	copy(buf[65:], bufferutil.ValueToBytes(u.Amount))
	return buf
}

// DecodeUserDeposit decodes a fixed-width UserDeposit record. A zero-filled
// buffer is valid and decodes to an uninitialized record; any other length
// than UserDepositLen fails with ErrInvalidRecordData.
func DecodeUserDeposit(buf []byte) (*UserDeposit, error) {
	if len(buf) != UserDepositLen {
		return nil, ErrInvalidRecordData
	}

	u := &UserDeposit{Initialized: bufferutil.BoolFromByte(buf[0])}
	copy(u.Depositor[:], buf[1:33])
	copy(u.Vault[:], buf[33:65])
	u.Amount = bufferutil.ValueFromBytes(buf[65:])
	return u, nil
}

// IsInitialized ...
func (u *UserDeposit) IsInitialized() bool {
	return u.Initialized
}

// Credit adds amount to the depositor's claim with overflow checking.
func (u *UserDeposit) Credit(amount uint64) error {
	total, ok := mathutil.CheckedAdd(u.Amount, amount)
	if !ok {
		return ErrAmountOverflow
	}
	u.Amount = total
	return nil
}

// Debit subtracts amount from the depositor's claim. Debiting more than the
// outstanding claim fails with ErrInsufficientFunds.
func (u *UserDeposit) Debit(amount uint64) error {
	total, ok := mathutil.CheckedSub(u.Amount, amount)
	if !ok {
		return ErrInsufficientFunds
	}
	u.Amount = total
	return nil
}
