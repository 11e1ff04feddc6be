// Package config loads process-wide configuration. The resulting value is
// immutable after startup and passed into constructors; request-handling
// code never reads configuration ambiently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ledgerbridge/ledgerbridge/internal/provider"
	"github.com/ledgerbridge/ledgerbridge/internal/reconcile"
	"github.com/ledgerbridge/ledgerbridge/internal/server"
)

// Config is the full process configuration.
type Config struct {
	Provider  provider.Config
	Server    server.Config
	Reconcile reconcile.Policy
	Logging   Logging
}

// Logging configures the process logger.
type Logging struct {
	Level  string
	Format string
}

// SetDefaults registers every configuration default with viper. Call once
// before reading the config file so absent keys resolve predictably.
func SetDefaults() {
	viper.SetDefault("plaid.environment", "sandbox")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("reconcile.default_window_months", 6)
	viper.SetDefault("reconcile.tolerance_days", 30)
	viper.SetDefault("reconcile.retry_after", 30*time.Second)
	viper.SetDefault("reconcile.page_limit", provider.MaxPageSize)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// Load assembles the configuration from viper's merged sources (defaults,
// config file, environment, flags) and validates the provider section.
func Load() (*Config, error) {
	cfg := &Config{
		Provider: provider.Config{
			ClientID:    viper.GetString("plaid.client_id"),
			Secret:      viper.GetString("plaid.secret"),
			Environment: viper.GetString("plaid.environment"),
		},
		Server: server.Config{
			Addr: viper.GetString("server.addr"),
		},
		Reconcile: reconcile.Policy{
			DefaultWindowMonths: viper.GetInt("reconcile.default_window_months"),
			ToleranceDays:       viper.GetInt("reconcile.tolerance_days"),
			RetryAfter:          viper.GetDuration("reconcile.retry_after"),
			PageLimit:           viper.GetInt("reconcile.page_limit"),
		},
		Logging: Logging{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}

	if err := cfg.Provider.Validate(); err != nil {
		return nil, fmt.Errorf("provider configuration: %w", err)
	}

	return cfg, nil
}

// ExpandPath expands a leading ~ and $VAR references in a file path, for
// paths supplied on the command line.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
