// =============================================================================
// Float to Ledger Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (float2ledger)
//   ├── processCmd (float2ledger process)
//   └── versionCmd (float2ledger version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "float2ledger",

	Short: "Post expense exports to the accounting system as ledger transactions",

	Long: `float2ledger converts expense and reimbursement exports into ledger
transactions (cheques, deposits, and bills) submitted to the accounting
system through the ledger gateway.

Before anything is written, every record's payee and account code is checked
against the accounting system's chart of accounts and payee directory; a
single unknown reference aborts the whole batch. After submission, every
per-transaction response is reconciled back to its originating draft and
reported individually.

Example Usage:
  float2ledger process --file export.csv        # Validate, build, and submit one batch
  float2ledger process --file export.csv --dry-run
  float2ledger process --file report.xlsx --config ./prod.yaml`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
