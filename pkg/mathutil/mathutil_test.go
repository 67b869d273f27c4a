package mathutil_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poolvault/poolvault-daemon/pkg/mathutil"
)

func TestCheckedAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y     uint64
		expected uint64
		ok       bool
	}{
		{0, 0, 0, true},
		{100, 50, 150, true},
		{math.MaxUint64, 0, math.MaxUint64, true},
		{math.MaxUint64 - 1, 1, math.MaxUint64, true},
		{math.MaxUint64, 1, 0, false},
		{math.MaxUint64, math.MaxUint64, 0, false},
	}

	for _, tt := range tests {
		sum, ok := mathutil.CheckedAdd(tt.x, tt.y)
		require.Equal(t, tt.ok, ok)
		require.Equal(t, tt.expected, sum)
	}
}

func TestCheckedSub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y     uint64
		expected uint64
		ok       bool
	}{
		{0, 0, 0, true},
		{150, 50, 100, true},
		{150, 150, 0, true},
		{149, 150, 0, false},
		{0, 1, 0, false},
	}

	for _, tt := range tests {
		diff, ok := mathutil.CheckedSub(tt.x, tt.y)
		require.Equal(t, tt.ok, ok)
		require.Equal(t, tt.expected, diff)
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1.5", mathutil.FormatAmount(150000000))
	require.Equal(t, "0", mathutil.FormatAmount(0))
	require.Equal(t, "0.00000001", mathutil.FormatAmount(1))
}
