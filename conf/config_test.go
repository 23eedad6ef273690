package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYaml = `
app_name: vaultdash
listen: ":9000"
hyperliquid:
  vault-address: "0xAC2322FE93C6B79F1178CFE77BC732F729BCB606"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYaml))
	require.NoError(t, err)

	assert.Equal(t, "https://api.hyperliquid.xyz", cfg.Hyperliquid.ApiURL)
	assert.Equal(t, "0xac2322fe93c6b79f1178cfe77bc732f729bcb606", cfg.Hyperliquid.VaultAddress)
	assert.Equal(t, 15*time.Minute, cfg.Returns.MatchTolerance)
	assert.Equal(t, time.Minute, cfg.Refresh.Interval)
	assert.False(t, cfg.Returns.LegacyFallback)
	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), cfg.Returns.StartTime())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("VAULT_ADDRESS", "0x1111111111111111111111111111111111111111")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Parse([]byte(minimalYaml))
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Hyperliquid.VaultAddress)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
}

func TestParse_ValidationCollectsAllErrors(t *testing.T) {
	bad := `
app_name: vaultdash
listen: ":9000"
hyperliquid:
  vault-address: "not-an-address"
returns:
  start-date: "01/10/2025"
`
	_, err := Parse([]byte(bad))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "VaultAddress"))
	assert.True(t, strings.Contains(err.Error(), "StartDate"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYaml), 0o644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, ":9000", AppConfig.Listen)

	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")))
}
