package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	require.Equal(t, defaultDatadir, GetDatadir())
	require.Equal(t, 4, GetInt(LogLevelKey))
	require.Equal(t, 100, GetInt(TransferRateLimitKey))
}

func TestDatadirSubdirs(t *testing.T) {
	datadir := GetDatadir()
	require.Equal(t, filepath.Join(datadir, DbLocation), GetDbDir())
	require.Equal(t, filepath.Join(datadir, LedgerLocation), GetLedgerDir())
}

func TestSetOverridesDefault(t *testing.T) {
	prev := GetInt(TransferRateLimitKey)
	defer Set(TransferRateLimitKey, prev)

	Set(TransferRateLimitKey, 5)
	require.Equal(t, 5, GetInt(TransferRateLimitKey))
	require.True(t, IsSet(TransferRateLimitKey))
}
