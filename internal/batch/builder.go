// =============================================================================
// Float to Ledger Converter - Transaction Classifier & Builder
// =============================================================================
//
// The builder decides each record's transaction shape and produces an
// in-memory draft:
//
//   - Reimbursement batches always build a Bill.
//   - A standard record with a negative total builds a Deposit: one line
//     crediting the referenced account for the absolute value of the total.
//     Split expansion never applies to deposits.
//   - Every other standard record builds a Disbursement: one line per active
//     split slot (or the single primary line when the record is not split),
//     plus one synthesized tax line against the tax-receivable account when
//     the record's aggregate tax is non-zero. The aggregate tax is applied
//     once, never divided across splits.
//
// Record-local failures (bad number, bad date, zero resulting line items)
// skip that record only; the rest of the batch proceeds. Building has no
// side effect on the accounting system.
//
// =============================================================================

package batch

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// BUILDER OPTIONS
// =============================================================================

// BuilderOptions carries the fixed account names, memos, and date formats
// used when assembling drafts. Defaults match the accounting file this tool
// was written for; deployments override them in the config file.
type BuilderOptions struct {
	// BankAccount is the funding bank account cheques are drawn on and
	// deposits are made into.
	BankAccount string

	// TaxAccount is the tax-receivable account the synthesized tax line
	// posts against.
	TaxAccount string

	// TaxMemo is the memo on the synthesized tax line.
	TaxMemo string

	// StandardDateFormat parses the expense date of standard batches
	// (Go reference layout).
	StandardDateFormat string

	// ReimbursementDateFormat parses the expense date of reimbursement
	// batches.
	ReimbursementDateFormat string
}

// DefaultBuilderOptions returns the builder defaults.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		BankAccount:             "Float Financial",
		TaxAccount:              "GST Accounts Receivable",
		TaxMemo:                 "Half of the GST",
		StandardDateFormat:      "06-01-02",
		ReimbursementDateFormat: "02/01/06",
	}
}

// Builder turns normalized records into transaction drafts.
type Builder struct {
	opts BuilderOptions
}

// NewBuilder creates a Builder with the given options. Zero-valued fields
// fall back to the defaults.
func NewBuilder(opts BuilderOptions) *Builder {
	def := DefaultBuilderOptions()
	if opts.BankAccount == "" {
		opts.BankAccount = def.BankAccount
	}
	if opts.TaxAccount == "" {
		opts.TaxAccount = def.TaxAccount
	}
	if opts.TaxMemo == "" {
		opts.TaxMemo = def.TaxMemo
	}
	if opts.StandardDateFormat == "" {
		opts.StandardDateFormat = def.StandardDateFormat
	}
	if opts.ReimbursementDateFormat == "" {
		opts.ReimbursementDateFormat = def.ReimbursementDateFormat
	}
	return &Builder{opts: opts}
}

// =============================================================================
// BATCH BUILD
// =============================================================================

// BuildBatch builds a draft for every record, collecting drafts in record
// order and skips as an accumulated error list. A skip never stops the
// batch. Each returned draft is stamped with a fresh correlation RequestID.
func (b *Builder) BuildBatch(records []Record, shape BatchShape) ([]TransactionDraft, []*RecordBuildError) {
	drafts := make([]TransactionDraft, 0, len(records))
	var skips []*RecordBuildError

	for i, rec := range records {
		draft, buildErr := b.Build(rec, i, shape)
		if buildErr != nil {
			skips = append(skips, buildErr)
			continue
		}
		draft.RequestID = uuid.NewString()
		drafts = append(drafts, *draft)
	}

	return drafts, skips
}

// Build classifies one record and produces its draft. The returned error is
// record-local; callers skip the record and continue. Build touches no
// external state, so calling it twice on the same record yields structurally
// identical drafts (RequestIDs are assigned by BuildBatch, not here).
func (b *Builder) Build(rec Record, index int, shape BatchShape) (*TransactionDraft, *RecordBuildError) {
	txnDate, err := b.parseDate(rec, index, shape)
	if err != nil {
		return nil, err
	}

	total, err := parseAmount(rec, index, FieldTotal)
	if err != nil {
		return nil, err
	}
	tax, err := parseAmount(rec, index, FieldTax)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(rec[FieldDescription])

	if shape.Kind == KindReimbursement {
		return b.buildBill(rec, index, txnDate, desc, tax)
	}
	if total.IsNegative() {
		return b.buildDeposit(rec, txnDate, desc, total), nil
	}
	return b.buildDisbursement(rec, index, shape, txnDate, desc, tax)
}

// =============================================================================
// SHAPE-SPECIFIC BUILDERS
// =============================================================================

// buildDeposit credits the record's account for the absolute value of the
// negative total. Deposits always have exactly one line and never carry a
// tax line.
func (b *Builder) buildDeposit(rec Record, txnDate, desc string, total decimal.Decimal) *TransactionDraft {
	return &TransactionDraft{
		Type:         TxnDeposit,
		TxnDate:      txnDate,
		Counterparty: b.opts.BankAccount,
		Memo:         desc,
		Lines: []LineItem{{
			AccountID: rec[FieldGLCode],
			Amount:    total.Abs(),
		}},
	}
}

// buildDisbursement assembles a cheque draft: active split slots, or the
// single primary line for a non-split record, then the tax line.
func (b *Builder) buildDisbursement(rec Record, index int, shape BatchShape, txnDate, desc string, tax decimal.Decimal) (*TransactionDraft, *RecordBuildError) {
	lines, err := b.expenseLines(rec, index, shape, desc)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &RecordBuildError{
			RecordIndex: index,
			Reason:      "no line items: all split slots blank and no primary amount",
		}
	}

	lines = b.appendTaxLine(lines, tax)

	return &TransactionDraft{
		Type:         TxnDisbursement,
		TxnDate:      txnDate,
		Counterparty: rec[shape.PayeeField()],
		Memo:         desc,
		Lines:        lines,
	}, nil
}

// buildBill assembles a payable bill for a reimbursement record: one
// subtotal line against the record's account, plus the tax line.
func (b *Builder) buildBill(rec Record, index int, txnDate, desc string, tax decimal.Decimal) (*TransactionDraft, *RecordBuildError) {
	if strings.TrimSpace(rec[FieldSubtotal]) == "" {
		return nil, &RecordBuildError{
			RecordIndex: index,
			Field:       FieldSubtotal,
			Value:       rec[FieldSubtotal],
			Reason:      "no line items: blank subtotal",
		}
	}
	subtotal, err := parseAmount(rec, index, FieldSubtotal)
	if err != nil {
		return nil, err
	}

	lines := []LineItem{{
		AccountID: rec[FieldGLCode],
		Amount:    subtotal,
		Memo:      desc,
	}}
	lines = b.appendTaxLine(lines, tax)

	return &TransactionDraft{
		Type:         TxnBill,
		TxnDate:      txnDate,
		Counterparty: rec[FieldRequester],
		Memo:         desc,
		Lines:        lines,
	}, nil
}

// expenseLines produces the disbursement line items before the tax line.
// A record in a split batch whose first slot amount is blank falls back to
// its primary fields when they are present.
func (b *Builder) expenseLines(rec Record, index int, shape BatchShape, desc string) ([]LineItem, *RecordBuildError) {
	if shape.MaxSplits > 0 && isSplit(rec) {
		var lines []LineItem
		for i := 1; i <= shape.MaxSplits; i++ {
			amountField := SplitField(i, "amount")
			if strings.TrimSpace(rec[amountField]) == "" {
				// Blank amount: this slot does not exist for this record.
				continue
			}
			amount, err := parseAmount(rec, index, amountField)
			if err != nil {
				return nil, err
			}
			slotTax := decimal.Zero
			taxField := SplitField(i, "tax amount")
			if strings.TrimSpace(rec[taxField]) != "" {
				slotTax, err = parseAmount(rec, index, taxField)
				if err != nil {
					return nil, err
				}
			}
			lines = append(lines, LineItem{
				AccountID: rec[SplitField(i, "gl code id")],
				Amount:    amount,
				TaxAmount: slotTax,
				Memo:      rec[SplitField(i, "description")],
			})
		}
		return lines, nil
	}

	// Non-split record: single primary line.
	if strings.TrimSpace(rec[FieldSubtotal]) == "" {
		return nil, nil
	}
	subtotal, err := parseAmount(rec, index, FieldSubtotal)
	if err != nil {
		return nil, err
	}
	return []LineItem{{
		AccountID: rec[FieldGLCode],
		Amount:    subtotal,
		Memo:      desc,
	}}, nil
}

// appendTaxLine appends the synthesized tax line when the aggregate tax is
// non-zero. The whole aggregate posts on one line.
func (b *Builder) appendTaxLine(lines []LineItem, tax decimal.Decimal) []LineItem {
	if tax.IsZero() {
		return lines
	}
	return append(lines, LineItem{
		AccountID: b.opts.TaxAccount,
		Amount:    tax,
		Memo:      b.opts.TaxMemo,
	})
}

// =============================================================================
// FIELD PARSING
// =============================================================================

// parseDate parses the record's expense date with the batch-kind-specific
// layout and reformats it as yyyy-mm-dd for the gateway.
func (b *Builder) parseDate(rec Record, index int, shape BatchShape) (string, *RecordBuildError) {
	layout := b.opts.StandardDateFormat
	if shape.Kind == KindReimbursement {
		layout = b.opts.ReimbursementDateFormat
	}

	raw := strings.TrimSpace(rec[FieldExpenseDate])
	t, err := time.Parse(layout, raw)
	if err != nil {
		return "", &RecordBuildError{
			RecordIndex: index,
			Field:       FieldExpenseDate,
			Value:       raw,
			Reason:      "invalid date format",
		}
	}
	return t.Format("2006-01-02"), nil
}

// parseAmount parses a currency field as an exact decimal. Any value that
// does not parse, including a blank required amount, fails the record.
func parseAmount(rec Record, index int, field string) (decimal.Decimal, *RecordBuildError) {
	raw := strings.TrimSpace(rec[field])
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &RecordBuildError{
			RecordIndex: index,
			Field:       field,
			Value:       raw,
			Reason:      "invalid number format",
		}
	}
	return amount, nil
}
