// =============================================================================
// PayPal to QuickBooks Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'convert', 'check') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pp2qb)
//   ├── convertCmd (pp2qb convert)
//   ├── checkCmd   (pp2qb check)
//   └── versionCmd (pp2qb version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Initializing logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/paypal-to-qb/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug-level logging when set to true.
var verbose bool

// log is the shared logger for all commands. It is configured in
// PersistentPreRun once the --verbose flag has been parsed.
var log zerolog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pp2qb",
	Short: "PayPal to QuickBooks Converter - Transform PayPal exports into IIF interchange files",

	Long: `PayPal to QuickBooks Converter is a CLI tool that transforms a PayPal
transaction export (CSV or XLSX) into a QuickBooks-compatible IIF file.

The converter nets out cancelled and refunded transactions, derives a
customer name ledger, classifies the remaining rows into balanced accounting
entries (sales deposits and platform fees), and dumps anything it could not
classify into a separate CSV for manual review.

Key Features:
  - Balanced double-entry output: every transaction's splits sum to its header
  - Cancellation/refund netting with a hard integrity check
  - Customer ledger derivation with deduplication
  - Unprocessed-rows dump so no input row is silently lost

Example Usage:
  pp2qb convert                        # Convert using config.yaml settings
  pp2qb convert --input paypal.csv     # Convert a specific export
  pp2qb check --input paypal.csv       # Verify cancellation netting only`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	// Configure the logger after flags are parsed, before any subcommand runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New()
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		} else {
			log = log.Level(zerolog.InfoLevel)
		}
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by all subcommands.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
