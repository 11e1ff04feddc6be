package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbridge/ledgerbridge/internal/provider"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	viper.Set("plaid.client_id", "test-client-id")
	viper.Set("plaid.secret", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.Provider.Environment)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 6, cfg.Reconcile.DefaultWindowMonths)
	assert.Equal(t, 30, cfg.Reconcile.ToleranceDays)
	assert.Equal(t, 30*time.Second, cfg.Reconcile.RetryAfter)
	assert.Equal(t, provider.MaxPageSize, cfg.Reconcile.PageLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_MissingCredentials(t *testing.T) {
	resetViper(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider configuration")
}

func TestLoad_Overrides(t *testing.T) {
	resetViper(t)
	viper.Set("plaid.client_id", "test-client-id")
	viper.Set("plaid.secret", "test-secret")
	viper.Set("plaid.environment", "production")
	viper.Set("server.addr", ":9090")
	viper.Set("reconcile.tolerance_days", 14)
	viper.Set("reconcile.retry_after", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Provider.Environment)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 14, cfg.Reconcile.ToleranceDays)
	assert.Equal(t, 2*time.Minute, cfg.Reconcile.RetryAfter)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("LEDGERBRIDGE_TEST_DIR", "/tmp/ledgerbridge")

	assert.Equal(t, "/tmp/ledgerbridge/config.yaml", ExpandPath("$LEDGERBRIDGE_TEST_DIR/config.yaml"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/config.yaml"), "~")
}
