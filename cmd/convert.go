// =============================================================================
// PayPal to QuickBooks Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the full conversion
// pipeline on one PayPal export.
//
// COMMAND USAGE:
//   pp2qb convert [flags]
//
// FLAGS:
//   --input        : Path to the PayPal export (.csv or .xlsx)
//   --output       : Path to the IIF file to write
//   --unprocessed  : Path to the unprocessed-rows CSV to write
//   --start-date   : Drop rows before this date (YYYY-MM-DD, inclusive)
//   --end-date     : Drop rows after this date (YYYY-MM-DD, inclusive)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Load and normalize the export
//   3. Net out cancellations and refunds (hard integrity check)
//   4. Write the customer ledger
//   5. Write sales deposits, then platform fees, each stage consuming
//      the rows it classified
//   6. Dump whatever is left to the unprocessed CSV
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/paypal-to-qb/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputPath overrides the configured input file.
var inputPath string

// outputPath overrides the configured IIF output file.
var outputPath string

// unprocessedPath overrides the configured unprocessed-rows file.
var unprocessedPath string

// startDate / endDate bound the reporting period (inclusive).
var startDate, endDate string

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PayPal export into a QuickBooks IIF file",
	Long: `The convert command loads a PayPal transaction export, nets out cancelled
and refunded transactions, and writes a QuickBooks IIF file containing the
customer ledger, the ticket-sale deposits, and the platform usage fees.

Rows the classifiers do not understand are written to a separate CSV so
nothing is silently dropped. If the export's cancellations do not net to
zero, the run aborts without writing accounting data: an inconsistent export
must be fixed upstream, not papered over.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the convert command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&inputPath, "input", "",
		"Path to the PayPal export (.csv or .xlsx)")
	convertCmd.Flags().StringVar(&outputPath, "output", "",
		"Path to the IIF file to write (default: output.iif next to the input)")
	convertCmd.Flags().StringVar(&unprocessedPath, "unprocessed", "",
		"Path to the unprocessed-rows CSV (default: unprocessed.csv next to the input)")
	convertCmd.Flags().StringVar(&startDate, "start-date", "",
		"Drop rows before this date (YYYY-MM-DD, inclusive)")
	convertCmd.Flags().StringVar(&endDate, "end-date", "",
		"Drop rows after this date (YYYY-MM-DD, inclusive)")
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// runConvert loads the configuration, applies flag overrides, and runs the
// pipeline.
func runConvert() error {
	startTime := time.Now()

	fmt.Println("=== PayPal to QuickBooks Converter ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if inputPath != "" {
		cfg.InputPath = inputPath
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if unprocessedPath != "" {
		cfg.UnprocessedPath = unprocessedPath
	}
	if startDate != "" {
		cfg.StartDate = startDate
	}
	if endDate != "" {
		cfg.EndDate = endDate
	}
	if cfg.InputPath == "" {
		return fmt.Errorf("no input file: set input_path in the config or pass --input")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := converter.New(cfg, log).Run()
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Conversion Complete ===")
	fmt.Printf("Input rows:       %d\n", result.LoadedRows)
	fmt.Printf("Netted out:       %d (+%d discarded)\n", result.NettedRows, result.DiscardedRows)
	fmt.Printf("Customers:        %d\n", result.Customers)
	fmt.Printf("Deposit entries:  %d\n", result.DepositEntries)
	fmt.Printf("Fee entries:      %d\n", result.FeeEntries)
	fmt.Printf("Unprocessed rows: %d\n", result.UnprocessedRows)
	fmt.Printf("IIF file:         %s\n", result.OutputFile)
	fmt.Printf("Unprocessed file: %s\n", result.UnprocessedFile)
	fmt.Printf("Time elapsed:     %s\n", elapsed)

	return nil
}
