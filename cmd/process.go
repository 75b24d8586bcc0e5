// =============================================================================
// Float to Ledger Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs one batch end to end.
//
// COMMAND USAGE:
//   float2ledger process --file export.csv [flags]
//
// FLAGS:
//   --file        : Path to the expense export to process (.csv or .xlsx)
//   --dry-run     : Stop after building drafts; nothing is submitted
//   --keep-source : Do not archive the source file after a successful batch
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read the source file into header-keyed records
//   3. Normalize records and detect the batch shape
//   4. Fetch the reference-data snapshot from the ledger gateway
//   5. Validate every payee and account against the snapshot
//      (any violation aborts the batch before a single write)
//   6. Classify and build transaction drafts, skipping bad records
//   7. Submit the batch as one request
//   8. Reconcile per-draft responses into outcomes
//   9. Print the summary; archive the source only if everything succeeded
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbickford/float2ledger/internal/batch"
	"github.com/tbickford/float2ledger/internal/config"
	"github.com/tbickford/float2ledger/internal/csvparser"
	"github.com/tbickford/float2ledger/internal/ledger"
	"github.com/tbickford/float2ledger/internal/logger"
	"github.com/tbickford/float2ledger/internal/xlsxparser"
	"github.com/tbickford/float2ledger/pkg/utils"
)

// sourceFile is the path to the expense export to process.
var sourceFile string

// dryRun stops the pipeline after building drafts.
var dryRun bool

// keepSource disables archival of the source file after a successful batch.
var keepSource bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Validate, build, and submit one expense batch",
	Long: `The process command reads one expense or reimbursement export, validates
every referenced payee and account code against the accounting system,
builds the corresponding ledger transactions, submits them as a single
batch, and reconciles the per-transaction responses.

Batch kind is detected from the export's columns: a file with a "Report
Name" column is a reimbursement export (posted as bills); anything else is
a standard transactions export (posted as cheques and deposits).

On a fully successful batch the source file is moved into the archive
directory. If any transaction fails, the file stays where it is and every
failure is reported with its returned line-item detail.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&sourceFile,
		"file",
		"",
		"Path to the expense export to process (.csv or .xlsx)",
	)
	processCmd.MarkFlagRequired("file")

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Build and print drafts without submitting anything",
	)

	processCmd.Flags().BoolVar(
		&keepSource,
		"keep-source",
		false,
		"Do not archive the source file after a successful batch",
	)
}

// runProcess runs one batch through the whole pipeline.
func runProcess(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	// =========================================================================
	// STEP 1: READ THE SOURCE FILE
	// =========================================================================

	log.Info().Str("file", sourceFile).Msg("reading source file")

	raw, err := readSource(sourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourceFile, err)
	}

	// =========================================================================
	// STEP 2: NORMALIZE AND DETECT THE BATCH SHAPE
	// =========================================================================

	records, shape, err := batch.Normalize(raw)
	if err != nil {
		return err
	}

	log.Info().
		Str("kind", shape.Kind.String()).
		Int("records", len(records)).
		Int("max_splits", shape.MaxSplits).
		Msg("batch shape detected")

	// =========================================================================
	// STEP 3: FETCH REFERENCE DATA AND VALIDATE
	// =========================================================================

	gateway := ledger.NewClient(cfg.GatewayURL)

	accountIDs, payeeNames, err := gateway.FetchReferenceData(ctx)
	if err != nil {
		return fmt.Errorf("reference data unavailable: %w", err)
	}
	ref := batch.NewReferenceData(accountIDs, payeeNames)

	report := batch.Validate(records, shape, ref)
	if !report.OK {
		for _, violation := range report.Violations {
			log.Error().Msg(violation)
		}
		return fmt.Errorf("validation failed with %d violation(s); nothing was submitted", len(report.Violations))
	}

	// =========================================================================
	// STEP 4: BUILD TRANSACTION DRAFTS
	// =========================================================================

	builder := batch.NewBuilder(batch.BuilderOptions{
		BankAccount:             cfg.BankAccount,
		TaxAccount:              cfg.TaxAccount,
		TaxMemo:                 cfg.TaxMemo,
		StandardDateFormat:      cfg.StandardDateFormat,
		ReimbursementDateFormat: cfg.ReimbursementDateFormat,
	})

	drafts, skips := builder.BuildBatch(records, shape)
	for _, skip := range skips {
		log.Error().Msg(skip.Error())
	}

	if len(drafts) == 0 {
		return fmt.Errorf("no buildable transactions in %s (%d record(s) skipped)", sourceFile, len(skips))
	}

	if dryRun {
		fmt.Printf("Dry run: %d transaction(s) would be submitted\n", len(drafts))
		for i, draft := range drafts {
			fmt.Printf("  %3d. %-12s %s  %-30s %s\n",
				i+1, draft.Type, draft.TxnDate, draft.Counterparty, draft.Total())
		}
		return nil
	}

	// =========================================================================
	// STEP 5: SUBMIT AND RECONCILE
	// =========================================================================

	log.Info().Int("transactions", len(drafts)).Msg("submitting batch")

	responses, err := gateway.SubmitBatch(ctx, drafts)
	if err != nil {
		return fmt.Errorf("batch submission failed: %w", err)
	}

	outcomes, allOK, err := batch.Reconcile(drafts, responses)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 6: REPORT AND ARCHIVE
	// =========================================================================

	var failed int
	for _, outcome := range outcomes {
		if outcome.Succeeded {
			fmt.Printf("  ✓ %s %s %s\n",
				drafts[outcome.DraftIndex].Type,
				outcome.Created.Counterparty,
				outcome.Created.Total)
			continue
		}

		failed++
		log.Error().
			Int("draft", outcome.DraftIndex+1).
			Str("request_id", outcome.RequestID).
			Int("status", outcome.StatusCode).
			Str("severity", outcome.StatusSeverity).
			Msg(outcome.StatusMessage)
		for _, line := range outcome.FailureDetail {
			log.Error().Msgf("    line: %s %q %s", line.Account, line.Memo, line.Amount)
		}
	}

	fmt.Printf("\nConversion complete, %d transaction(s) submitted, %d skipped, %d failed\n",
		len(drafts), len(skips), failed)

	if !allOK {
		return fmt.Errorf("%d transaction(s) failed; source file left in place", failed)
	}

	if !keepSource {
		fm := utils.NewFileManager(cfg.ArchiveDir)
		archived, err := fm.ArchiveSourceFile(sourceFile)
		if err != nil {
			return fmt.Errorf("batch succeeded but archival failed: %w", err)
		}
		log.Info().Str("archived", archived).Msg("source file archived")
	}

	return nil
}

// readSource parses the source file into header-keyed records, selecting
// the parser by file extension.
func readSource(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsxparser.Parse(path)
	default:
		return csvparser.Parse(path)
	}
}
