// =============================================================================
// Float to Ledger Converter - Batch Engine Errors
// =============================================================================
//
// Error taxonomy for the batch engine:
//
//   - MalformedBatchError : fatal, aborts the run (empty source, missing
//     required columns). Raised before validation.
//   - ValidationReport    : batch-aborting but not fatal to the process; one
//     entry per distinct unknown payee or account, reported all at once.
//   - RecordBuildError    : record-local and recoverable; the offending
//     record is skipped, the rest of the batch proceeds.
//
// Batch-level errors stop the run before any write reaches the accounting
// system. Record-level errors are accumulated and returned by the builder,
// never logged from inside the engine, so callers can test each stage
// without capturing output streams.
//
// =============================================================================

package batch

import (
	"fmt"
	"strings"
)

// MalformedBatchError indicates the batch cannot be processed at all:
// either the source held zero records, or the first record is missing
// columns that the detected batch shape requires.
type MalformedBatchError struct {
	// Reason is a short description ("empty batch", "missing required fields").
	Reason string

	// MissingFields lists the canonical field names absent from the batch,
	// when the reason is missing fields.
	MissingFields []string
}

// Error implements the error interface.
func (e *MalformedBatchError) Error() string {
	if len(e.MissingFields) == 0 {
		return fmt.Sprintf("malformed batch: %s", e.Reason)
	}
	return fmt.Sprintf("malformed batch: %s: %s", e.Reason, strings.Join(e.MissingFields, ", "))
}

// RecordBuildError describes why one record could not be turned into a
// draft. The record identity, field, and raw value are carried so the
// operator can locate and fix the source row without re-running with extra
// diagnostics.
type RecordBuildError struct {
	// RecordIndex is the zero-based position of the record in the batch.
	RecordIndex int

	// Field is the canonical field that caused the failure, when one did.
	Field string

	// Value is the offending raw value.
	Value string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *RecordBuildError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.RecordIndex+1, e.Reason)
	}
	return fmt.Sprintf("record %d: field %q: %s (value: %q)", e.RecordIndex+1, e.Field, e.Reason, e.Value)
}

// ValidationReport is the result of the whole-batch reference-data check.
type ValidationReport struct {
	// OK is true when every referenced payee and account exists in the
	// reference snapshot.
	OK bool

	// Violations holds one line per distinct bad value, in first-seen
	// order across the batch.
	Violations []string
}
