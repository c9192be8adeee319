// =============================================================================
// PayPal to QuickBooks Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the PayPal to QuickBooks converter CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   pp2qb convert       - Convert a PayPal export into a QuickBooks IIF file
//   pp2qb check         - Verify the export's cancellation netting without writing output
//   pp2qb version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/paypal-to-qb/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
