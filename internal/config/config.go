// =============================================================================
// PayPal to QuickBooks Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. Everything the converter hard-coded in its first life is
// surfaced here: file paths, reporting-period date bounds, QuickBooks account
// names, the residual PayPal refund fee, and the balance-check epsilon.
//
// CONFIGURATION FILE:
//   A single YAML file (default: config.yaml). Every field has a default that
//   reproduces the historical behaviour, so an empty file is a valid file.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// dateLayout is the format for start_date / end_date values.
const dateLayout = "2006-01-02"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputPath is the PayPal export to convert (.csv or .xlsx).
	InputPath string `yaml:"input_path"`

	// OutputPath is the IIF file to write. When empty, it defaults to
	// "output.iif" next to the input file. The {uuid} and {timestamp}
	// placeholders are expanded if present.
	OutputPath string `yaml:"output_path"`

	// UnprocessedPath is the CSV dump of rows no classifier consumed.
	// When empty, it defaults to "unprocessed.csv" next to the input file.
	UnprocessedPath string `yaml:"unprocessed_path"`

	// InputArchiveDir is where the input export is moved after a successful
	// run. Ignored when ArchiveOnSuccess is false.
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves the input file to InputArchiveDir after a
	// successful conversion.
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// FallbackEncoding is the encoding assumed when the input is not valid
	// UTF-8. The file is transcoded in memory before parsing.
	// Supported: "windows-1252", "iso-8859-1".
	FallbackEncoding string `yaml:"fallback_encoding"`

	// =========================================================================
	// REPORTING PERIOD
	// =========================================================================

	// StartDate, when set (YYYY-MM-DD), drops rows dated before it
	// (inclusive bound).
	StartDate string `yaml:"start_date"`

	// EndDate, when set (YYYY-MM-DD), drops rows dated after it
	// (inclusive bound).
	EndDate string `yaml:"end_date"`

	// =========================================================================
	// QUICKBOOKS ACCOUNTS
	// =========================================================================

	// Accounts names the QuickBooks accounts the emitted entries post to.
	Accounts Accounts `yaml:"accounts"`

	// =========================================================================
	// ENGINE TUNING
	// =========================================================================

	// ResidualFee is the per-refund fee PayPal does not reverse, as a signed
	// decimal string. It is kept as a string because yaml.v3 cannot decode
	// scalars into decimal.Decimal directly.
	ResidualFee string `yaml:"residual_fee"`

	// Epsilon is the tolerance for the netting and balance checks, as a
	// decimal string.
	Epsilon string `yaml:"epsilon"`
}

// Accounts holds the QuickBooks account and payee names used by the emitters.
type Accounts struct {
	// Deposit is the bank account deposits and platform-fee checks draw on.
	Deposit string `yaml:"deposit"`

	// SaleFee is the expense account for the PayPal fee on each cart sale.
	SaleFee string `yaml:"sale_fee"`

	// Discount is the account for the synthetic discount split inserted when
	// a cart's items do not balance against its payment.
	Discount string `yaml:"discount"`

	// PlatformPayee is the payee name on platform usage-fee checks.
	PlatformPayee string `yaml:"platform_payee"`

	// PlatformFee is the expense account for platform usage fees.
	PlatformFee string `yaml:"platform_fee"`

	// PlatformClass is the class assigned to platform usage-fee entries.
	PlatformClass string `yaml:"platform_class"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration the converter shipped with: the account
// tree and constants of the original TicketLeap books.
func Default() *Config {
	return &Config{
		FallbackEncoding: "windows-1252",
		Accounts: Accounts{
			Deposit:       "PayPal Account",
			SaleFee:       "Competition Expenses:Sales:Ticketing:PayPal Fees",
			Discount:      "Competition Expenses:Advertising & Sponsorship:Promotions:Early Bird",
			PlatformPayee: "TicketLeap",
			PlatformFee:   "Operational Expenses:Association Administration:Bank Fees:PayPal Fees",
			PlatformClass: "Other",
		},
		ResidualFee: "-0.30",
		Epsilon:     "0.01",
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the YAML configuration at configPath on top of the defaults.
// Fields absent from the file keep their default values.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would only fail deep
// inside a run.
func (c *Config) Validate() error {
	if _, _, err := c.DateBounds(); err != nil {
		return err
	}
	if _, err := c.ResidualFeeAmount(); err != nil {
		return err
	}
	eps, err := c.EpsilonAmount()
	if err != nil {
		return err
	}
	if !eps.IsPositive() {
		return fmt.Errorf("epsilon must be positive, got %s", c.Epsilon)
	}
	switch c.FallbackEncoding {
	case "", "windows-1252", "iso-8859-1":
	default:
		return fmt.Errorf("unsupported fallback encoding %q", c.FallbackEncoding)
	}
	return nil
}

// ResidualFeeAmount parses the residual_fee setting.
func (c *Config) ResidualFeeAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.ResidualFee)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid residual_fee %q: %w", c.ResidualFee, err)
	}
	return d, nil
}

// EpsilonAmount parses the epsilon setting.
func (c *Config) EpsilonAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Epsilon)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid epsilon %q: %w", c.Epsilon, err)
	}
	return d, nil
}

// DateBounds parses the optional start_date / end_date settings.
// A nil pointer means the bound is not set.
func (c *Config) DateBounds() (start, end *time.Time, err error) {
	if c.StartDate != "" {
		t, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
		}
		start = &t
	}
	if c.EndDate != "" {
		t, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("end_date %s is before start_date %s", c.EndDate, c.StartDate)
	}
	return start, end, nil
}
