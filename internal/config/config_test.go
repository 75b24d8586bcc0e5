package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Float Financial", cfg.BankAccount)
	assert.Equal(t, "GST Accounts Receivable", cfg.TaxAccount)
	assert.Equal(t, "Half of the GST", cfg.TaxMemo)
	assert.Equal(t, "06-01-02", cfg.StandardDateFormat)
	assert.Equal(t, "02/01/06", cfg.ReimbursementDateFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
gateway_url: "https://ledger.internal:9443"
bank_account: "Operating Chequing"
tax_account: "HST Receivable"
log_level: "debug"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ledger.internal:9443", cfg.GatewayURL)
	assert.Equal(t, "Operating Chequing", cfg.BankAccount)
	assert.Equal(t, "HST Receivable", cfg.TaxAccount)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched settings keep their defaults.
	assert.Equal(t, "Half of the GST", cfg.TaxMemo)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadRejectsEmptyBankAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`bank_account: ""`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bank_account")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway_url: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
