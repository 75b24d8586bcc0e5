// =============================================================================
// Float to Ledger Converter - Configuration Module
// =============================================================================
//
// Loads and validates the application configuration from a YAML file. The
// configuration covers:
//   1. Ledger gateway connection settings
//   2. Fixed account names and memos used when building drafts
//   3. Batch-kind-specific date formats
//   4. Archival and logging settings
//
// Every setting has a default matching the accounting file this tool was
// originally written for, so an empty config file is valid.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// GATEWAY SETTINGS
	// =========================================================================

	// GatewayURL is the base URL of the ledger gateway service.
	// Default: "http://localhost:8733"
	GatewayURL string `yaml:"gateway_url"`

	// =========================================================================
	// LEDGER ACCOUNT SETTINGS
	// =========================================================================

	// BankAccount is the funding bank account cheques are drawn on and
	// deposits are made into.
	// Default: "Float Financial"
	BankAccount string `yaml:"bank_account"`

	// TaxAccount is the tax-receivable account the synthesized tax line
	// posts against.
	// Default: "GST Accounts Receivable"
	TaxAccount string `yaml:"tax_account"`

	// TaxMemo is the memo placed on the synthesized tax line.
	// Default: "Half of the GST"
	TaxMemo string `yaml:"tax_memo"`

	// =========================================================================
	// DATE FORMATS
	// =========================================================================
	// Go reference layouts for the expense date column. Standard exports use
	// yy-mm-dd; reimbursement exports use dd/mm/yy.

	// StandardDateFormat parses standard-batch expense dates.
	// Default: "06-01-02"
	StandardDateFormat string `yaml:"standard_date_format"`

	// ReimbursementDateFormat parses reimbursement-batch expense dates.
	// Default: "02/01/06"
	ReimbursementDateFormat string `yaml:"reimbursement_date_format"`

	// =========================================================================
	// FILE HANDLING
	// =========================================================================

	// ArchiveDir is where source files are moved after a fully successful
	// batch. Files from batches with any failed transaction stay in place.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// LOGGING
	// =========================================================================

	// LogLevel controls verbosity: "debug", "info", "warn", or "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		GatewayURL:              "http://localhost:8733",
		BankAccount:             "Float Financial",
		TaxAccount:              "GST Accounts Receivable",
		TaxMemo:                 "Half of the GST",
		StandardDateFormat:      "06-01-02",
		ReimbursementDateFormat: "02/01/06",
		ArchiveDir:              "./archive",
		LogLevel:                "info",
	}
}

// Load reads the configuration file at path, applying defaults for any
// setting the file omits. A missing file is not an error: the defaults are
// returned so the tool works out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// validate checks settings that would otherwise fail deep inside a run.
func (c *Config) validate() error {
	if c.GatewayURL == "" {
		return fmt.Errorf("gateway_url must not be empty")
	}
	if c.BankAccount == "" {
		return fmt.Errorf("bank_account must not be empty")
	}
	if c.TaxAccount == "" {
		return fmt.Errorf("tax_account must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	return nil
}
