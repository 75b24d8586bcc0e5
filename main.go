// =============================================================================
// Float to Ledger Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the float2ledger CLI application. It
// converts expense/reimbursement exports into ledger transactions (cheques,
// deposits, and bills) posted to the accounting system through the ledger
// gateway, with pre-flight validation against the chart of accounts and the
// payee directory.
//
// USAGE:
//   float2ledger process --file export.csv   - Validate, build, and submit one batch
//   float2ledger version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/tbickford/float2ledger/cmd"
)

func main() {
	cmd.Execute()
}
