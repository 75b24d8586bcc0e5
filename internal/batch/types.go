// =============================================================================
// Float to Ledger Converter - Batch Engine Types
// =============================================================================
//
// Shared types for the batch engine: the detected batch shape, normalized
// records, transaction drafts, the reference-data snapshot, and per-draft
// submission outcomes. These are used by:
//   - normalizer
//   - validator
//   - builder
//   - reconciler
//
// All monetary values are exact decimals (shopspring/decimal). float64 is
// never used for money anywhere in the engine.
//
// =============================================================================

package batch

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// BATCH SHAPE
// =============================================================================

// BatchKind identifies which kind of export a batch came from.
type BatchKind int

const (
	// KindStandard is a standard transactions export (card spend).
	KindStandard BatchKind = iota

	// KindReimbursement is a reimbursement-report export, detected by the
	// presence of a "report name" column. Reimbursements always post as bills.
	KindReimbursement
)

// String returns a human-readable name for the batch kind.
func (k BatchKind) String() string {
	if k == KindReimbursement {
		return "reimbursement"
	}
	return "standard"
}

// BatchShape is the schema detected from a batch's header row. It is computed
// once by the normalizer and threaded explicitly through the validator and
// builder; no stage re-derives it from column names.
type BatchShape struct {
	// Kind is the detected batch kind.
	Kind BatchKind

	// MaxSplits is the largest numbered split index present in the header
	// ("line item 1 amount", "line item 2 amount", ...). Zero means the
	// batch has no split columns at all.
	MaxSplits int
}

// PayeeField returns the canonical field holding the payee name for this
// batch kind.
func (s BatchShape) PayeeField() string {
	if s.Kind == KindReimbursement {
		return FieldRequester
	}
	return FieldMerchantName
}

// =============================================================================
// CANONICAL FIELD NAMES
// =============================================================================
// Keys of a normalized record. The normalizer case-folds raw export headers
// onto these names; every lookup below the normalizer uses the constants.

const (
	FieldDescription  = "description"
	FieldExpenseDate  = "expense date"
	FieldMerchantName = "merchant name"
	FieldRequester    = "requester"
	FieldReportName   = "report name"
	FieldTotal        = "total"
	FieldSubtotal     = "subtotal"
	FieldTax          = "tax"
	FieldGLCode       = "gl code id"
)

// Record is a normalized record: canonical field name -> raw string value.
// Precondition (not re-checked per record): every record in a batch has the
// same field shape as the first record, since all rows come from one header.
type Record map[string]string

// =============================================================================
// TRANSACTION DRAFTS
// =============================================================================

// TxnType tags the shape of a transaction draft.
type TxnType int

const (
	// TxnDisbursement is a cheque drawn on the funding bank account.
	TxnDisbursement TxnType = iota

	// TxnDeposit is a deposit into the funding bank account.
	TxnDeposit

	// TxnBill is a payable bill to the reimbursement requester.
	TxnBill
)

// String returns the ledger name for the transaction type.
func (t TxnType) String() string {
	switch t {
	case TxnDeposit:
		return "deposit"
	case TxnBill:
		return "bill"
	default:
		return "disbursement"
	}
}

// LineItem is one ledger line of a draft.
type LineItem struct {
	// AccountID is the full account name in the chart of accounts.
	AccountID string

	// Amount is the line amount.
	Amount decimal.Decimal

	// TaxAmount is the portion of Amount that is tax, when the source
	// carries per-line tax. Zero otherwise.
	TaxAmount decimal.Decimal

	// Memo is the line memo shown in the ledger.
	Memo string
}

// TransactionDraft is an in-memory, not-yet-submitted ledger transaction.
// Invariant: Lines is never empty; the builder rejects a record that would
// produce an empty draft before the draft exists.
type TransactionDraft struct {
	// RequestID is a correlation id generated per draft and sent with the
	// batch. Outcomes echo it so a failed draft can be traced in logs even
	// though pairing is positional.
	RequestID string

	// Type is the transaction shape.
	Type TxnType

	// TxnDate is the transaction date formatted as yyyy-mm-dd.
	TxnDate string

	// Counterparty is the payee (disbursement), vendor (bill), or the
	// account the deposit is made into.
	Counterparty string

	// Memo is the transaction-level memo.
	Memo string

	// Lines is the ordered line-item sequence, including the synthesized
	// tax line when the record carried a non-zero aggregate tax.
	Lines []LineItem
}

// Total returns the sum of all line amounts.
func (d TransactionDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Lines {
		total = total.Add(line.Amount)
	}
	return total
}

// =============================================================================
// REFERENCE DATA SNAPSHOT
// =============================================================================

// ReferenceData is the read-only snapshot of valid account ids and payee
// names, fetched once per run from the accounting system and discarded at
// run end. It is never cached across runs.
type ReferenceData struct {
	accounts map[string]struct{}
	payees   map[string]struct{}
}

// NewReferenceData builds a snapshot from the gateway's active account and
// payee lists.
func NewReferenceData(accountIDs, payeeNames []string) *ReferenceData {
	ref := &ReferenceData{
		accounts: make(map[string]struct{}, len(accountIDs)),
		payees:   make(map[string]struct{}, len(payeeNames)),
	}
	for _, id := range accountIDs {
		ref.accounts[id] = struct{}{}
	}
	for _, name := range payeeNames {
		ref.payees[name] = struct{}{}
	}
	return ref
}

// HasAccount reports whether the account id exists in the snapshot.
func (r *ReferenceData) HasAccount(id string) bool {
	_, ok := r.accounts[id]
	return ok
}

// HasPayee reports whether the payee name exists in the snapshot.
func (r *ReferenceData) HasPayee(name string) bool {
	_, ok := r.payees[name]
	return ok
}

// =============================================================================
// SUBMISSION OUTCOMES
// =============================================================================

// CreatedSummary identifies a successfully created transaction for operator
// confirmation.
type CreatedSummary struct {
	Counterparty string
	Total        decimal.Decimal
}

// FailureLine is one line item from a failed response's own detail section.
// The detail comes from the response, not from the submitted draft, because
// the accounting system may return different detail than was submitted.
type FailureLine struct {
	Account string
	Memo    string
	Amount  decimal.Decimal
}

// SubmissionOutcome is the reconciled result for one draft.
type SubmissionOutcome struct {
	// DraftIndex is the draft's position in the submitted batch.
	DraftIndex int

	// RequestID echoes the draft's correlation id.
	RequestID string

	// Succeeded is true iff the response status code was zero.
	Succeeded bool

	// StatusCode, StatusSeverity, and StatusMessage are copied from the
	// gateway response.
	StatusCode     int
	StatusSeverity string
	StatusMessage  string

	// Created is set on success.
	Created *CreatedSummary

	// FailureDetail is set on failure when the response carried detail.
	FailureDetail []FailureLine
}
