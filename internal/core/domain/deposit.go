package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// Deposit holds info about a single credit of funds into a vault's pool.
type Deposit struct {
	ID        string
	Vault     Identity
	Depositor Identity
	Asset     Identity
	Amount    uint64
	Timestamp int64
}

func (d Deposit) Key() string {
	buf := []byte(fmt.Sprintf("%s:%s:%s", d.Vault, d.Depositor, d.ID))
	return hex.EncodeToString(btcutil.Hash160(buf))
}
