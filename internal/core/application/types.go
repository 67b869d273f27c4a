package application

import "github.com/poolvault/poolvault-daemon/internal/core/domain"

// BalanceInfo pairs the vault-wide outstanding total with the claim of the
// requesting depositor.
type BalanceInfo struct {
	Asset         domain.Identity
	PoolAccount   domain.Identity
	TotalDeposits uint64
	UserAmount    uint64
}
