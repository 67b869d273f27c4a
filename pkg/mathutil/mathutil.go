package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// BigOne represents a single unit of an asset with precision 8
	BigOne = uint64(math.Pow10(8))
	// BigOneDecimal represents a single unit of an asset with precision 8 as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))
)

func init() {
	decimal.DivisionPrecision = 8
}

// CheckedAdd returns x + y and whether the sum fits in an uint64. The ledger
// never relies on wraparound.
func CheckedAdd(x, y uint64) (uint64, bool) {
	if x > math.MaxUint64-y {
		return 0, false
	}
	return x + y, true
}

// CheckedSub returns x - y and whether the subtraction stays non-negative.
func CheckedSub(x, y uint64) (uint64, bool) {
	if y > x {
		return 0, false
	}
	return x - y, true
}

// FormatAmount renders an amount expressed in base units as a decimal string
// with precision 8 (ie. 150000000 -> "1.5").
func FormatAmount(amount uint64) string {
	amountDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	return amountDecimal.Div(BigOneDecimal).String()
}
