// =============================================================================
// Float to Ledger Converter - Reference Data Validator
// =============================================================================
//
// The validator cross-checks every record's payee and every referenced
// account id against the reference-data snapshot before anything is built
// or submitted. Violations are collected, not thrown: every distinct bad
// value produces exactly one violation line regardless of how many records
// reference it, and the whole batch is checked before the result is
// returned. A single violation aborts the batch; there is no partial
// submission of the valid subset.
//
// =============================================================================

package batch

import (
	"fmt"
	"strings"
)

// Validate checks the whole batch against the snapshot.
//
// Account collection rules:
//   - In a batch with split columns, a record is "split" when its first
//     split slot's amount is non-blank. Its accounts are the gl codes of
//     every slot whose amount is non-blank; a blank amount means that slot
//     does not exist for this record.
//   - A record that is not split contributes its single "gl code id" field.
//
// Payees come from the shape's payee field (merchant for standard batches,
// requester for reimbursements).
func Validate(records []Record, shape BatchShape, ref *ReferenceData) ValidationReport {
	report := ValidationReport{OK: true}

	payeeField := shape.PayeeField()
	seenPayees := make(map[string]struct{})
	seenAccounts := make(map[string]struct{})

	for _, rec := range records {
		payee := rec[payeeField]
		if _, done := seenPayees[payee]; !done {
			seenPayees[payee] = struct{}{}
			if !ref.HasPayee(payee) {
				report.Violations = append(report.Violations,
					fmt.Sprintf("invalid %s: %q", payeeField, payee))
			}
		}

		for _, account := range recordAccounts(rec, shape) {
			if _, done := seenAccounts[account]; done {
				continue
			}
			seenAccounts[account] = struct{}{}
			if !ref.HasAccount(account) {
				report.Violations = append(report.Violations,
					fmt.Sprintf("invalid account id: %q", account))
			}
		}
	}

	report.OK = len(report.Violations) == 0
	return report
}

// recordAccounts returns the account ids a record references, honouring the
// split rules above.
func recordAccounts(rec Record, shape BatchShape) []string {
	if shape.MaxSplits > 0 && isSplit(rec) {
		var accounts []string
		for i := 1; i <= shape.MaxSplits; i++ {
			if strings.TrimSpace(rec[SplitField(i, "amount")]) == "" {
				continue
			}
			accounts = append(accounts, rec[SplitField(i, "gl code id")])
		}
		return accounts
	}
	return []string{rec[FieldGLCode]}
}

// isSplit reports whether the record actually uses its split slots.
func isSplit(rec Record) bool {
	return strings.TrimSpace(rec[SplitField(1, "amount")]) != ""
}
