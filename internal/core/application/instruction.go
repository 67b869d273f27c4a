package application

import (
	"github.com/poolvault/poolvault-daemon/pkg/bufferutil"
)

// Instruction discriminant tags. The first byte of every payload selects
// the operation; tags 1 and 2 carry an 8-byte little-endian amount.
const (
	CreateVaultTag uint8 = 0
	DepositTag     uint8 = 1
	WithdrawTag    uint8 = 2
)

const amountLen = 8

// Instruction is one structurally valid ledger instruction. Amount is only
// meaningful for Deposit and Withdraw.
type Instruction struct {
	Tag    uint8
	Amount uint64
}

// DecodeInstruction parses an opaque payload into an Instruction. Empty
// input, an unknown tag or a truncated amount fail with
// ErrInvalidInstruction. No semantic validation happens here.
func DecodeInstruction(payload []byte) (*Instruction, error) {
	if len(payload) == 0 {
		return nil, ErrInvalidInstruction
	}

	tag, rest := payload[0], payload[1:]
	switch tag {
	case CreateVaultTag:
		return &Instruction{Tag: tag}, nil
	case DepositTag, WithdrawTag:
		if len(rest) < amountLen {
			return nil, ErrInvalidInstruction
		}
		return &Instruction{
			Tag:    tag,
			Amount: bufferutil.ValueFromBytes(rest[:amountLen]),
		}, nil
	default:
		return nil, ErrInvalidInstruction
	}
}

// Bytes encodes the instruction to its wire format, the exact inverse of
// DecodeInstruction.
func (i Instruction) Bytes() []byte {
	buf := []byte{i.Tag}
	if i.Tag == DepositTag || i.Tag == WithdrawTag {
		buf = append(buf, bufferutil.ValueToBytes(i.Amount)...)
	}
	return buf
}
