package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// Withdrawal holds info about a single debit of funds from a vault's pool.
type Withdrawal struct {
	ID        string
	Vault     Identity
	Depositor Identity
	Asset     Identity
	Amount    uint64
	Timestamp int64
}

func (w Withdrawal) Key() string {
	buf := []byte(fmt.Sprintf("%s:%s:%s", w.Vault, w.Depositor, w.ID))
	return hex.EncodeToString(btcutil.Hash160(buf))
}
