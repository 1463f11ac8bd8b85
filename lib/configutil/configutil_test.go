package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string  `json:"base_url"`
	RateLimit float64 `json:"rate_limit"`
	UserAgent string  `json:"user_agent"`
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// comments are allowed
		base_url: "https://example.com/search/",
		rate_limit: 2,
		user_agent: "default",
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{user_agent: "local"}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:   "https://example.com/search/",
		RateLimit: 2,
		UserAgent: "local",
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvString(t *testing.T) {
	t.Setenv("SMM_TEST_VALUE", "set")
	require.Equal(t, "set", EnvString("SMM_TEST_VALUE", "fallback"))
	require.Equal(t, "fallback", EnvString("SMM_TEST_UNSET_VALUE", "fallback"))
}
