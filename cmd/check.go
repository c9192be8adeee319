// =============================================================================
// PayPal to QuickBooks Converter - Check Command
// =============================================================================
//
// This file defines the 'check' command, which runs the pipeline only as far
// as cancellation resolution and reports the netting results. Nothing is
// written: this is the dry run to do before trusting an export.
//
// COMMAND USAGE:
//   pp2qb check [--input paypal.csv]
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/paypal-to-qb/internal/config"
	"github.com/ginjaninja78/paypal-to-qb/internal/converter"
)

// checkInputPath overrides the configured input file for the check.
var checkInputPath string

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify an export's cancellation netting without writing output",
	Long: `The check command loads and normalizes a PayPal export, resolves its
cancellations, and reports whether the removed rows net to zero. No IIF or
unprocessed file is written.

A passing check means the export is internally consistent and a convert run
will not abort on the netting checks.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

// init registers the check command with the root command.
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkInputPath, "input", "",
		"Path to the PayPal export (.csv or .xlsx)")
}

// runCheck loads the configuration and runs the dry integrity check.
func runCheck() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkInputPath != "" {
		cfg.InputPath = checkInputPath
	}
	if cfg.InputPath == "" {
		return fmt.Errorf("no input file: set input_path in the config or pass --input")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	report, err := converter.New(cfg, log).Check()
	if err != nil {
		return err
	}

	fmt.Println("=== Integrity Check ===")
	fmt.Printf("Input rows:      %d\n", report.LoadedRows)
	if report.Transcoded {
		fmt.Printf("Encoding:        transcoded from %s\n", cfg.FallbackEncoding)
	}
	fmt.Printf("Netted rows:     %d\n", report.NettedRows)
	fmt.Printf("Discarded rows:  %d\n", report.DiscardedRows)
	fmt.Printf("Netted gross:    %s\n", report.NettedGross.StringFixed(2))
	fmt.Printf("Netted fees:     %s\n", report.NettedFee.StringFixed(2))
	fmt.Printf("Residual fees:   %d\n", report.ResidualFees)
	fmt.Println("\nCancellation netting checks passed.")

	return nil
}

// loadConfig reads the configuration file named by --config. A missing file
// at the default location is not an error; the defaults apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && cfgFile == "config.yaml" {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
