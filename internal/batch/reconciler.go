// =============================================================================
// Float to Ledger Converter - Reconciler
// =============================================================================
//
// The reconciler walks the gateway's heterogeneous response sequence back
// into one SubmissionOutcome per draft. Responses are paired with drafts
// strictly by position: the gateway contract guarantees one response per
// draft in request order, even when individual drafts fail server-side.
//
// The response detail is modeled as a tagged union over
// {Deposit, Disbursement, Bill, Unknown} and matched exhaustively; an
// unrecognized shape is itself a failure outcome with a generic message and
// never aborts reconciliation of the remaining responses.
//
// Status code semantics:
//   - 0   : success; the created transaction's identifying summary is
//           extracted for operator confirmation.
//   - > 0 : the accounting system rejected or flagged the draft; every line
//           item of the response's own detail section is extracted for
//           diagnosis, since the returned detail may differ from what was
//           submitted.
//
// =============================================================================

package batch

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESPONSE MODEL
// =============================================================================
// The wire shapes returned by the ledger gateway, one per submitted draft.

// ResponseKind tags the detail variant of a submit response.
type ResponseKind int

const (
	// ResponseUnknown is any detail shape the reconciler does not know how
	// to unpack. It is the explicit fallthrough arm, never silently skipped.
	ResponseUnknown ResponseKind = iota

	// ResponseDeposit is the detail of a created deposit.
	ResponseDeposit

	// ResponseDisbursement is the detail of a created cheque.
	ResponseDisbursement

	// ResponseBill is the detail of a created bill.
	ResponseBill
)

// MarshalText encodes the kind as its wire name.
func (k ResponseKind) MarshalText() ([]byte, error) {
	switch k {
	case ResponseDeposit:
		return []byte("deposit"), nil
	case ResponseDisbursement:
		return []byte("disbursement"), nil
	case ResponseBill:
		return []byte("bill"), nil
	default:
		return []byte("unknown"), nil
	}
}

// UnmarshalText decodes a wire kind. Any name this build does not know folds
// into ResponseUnknown so a newer gateway cannot break reconciliation.
func (k *ResponseKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "deposit":
		*k = ResponseDeposit
	case "disbursement":
		*k = ResponseDisbursement
	case "bill":
		*k = ResponseBill
	default:
		*k = ResponseUnknown
	}
	return nil
}

// ResponseLine is one line item of a response's detail section.
type ResponseLine struct {
	Account string          `json:"account"`
	Memo    string          `json:"memo"`
	Amount  decimal.Decimal `json:"amount"`
}

// DepositDetail is the created-deposit detail.
type DepositDetail struct {
	TxnDate   string          `json:"txn_date"`
	ToAccount string          `json:"to_account"`
	Memo      string          `json:"memo"`
	Total     decimal.Decimal `json:"total"`
	Lines     []ResponseLine  `json:"lines"`
}

// DisbursementDetail is the created-cheque detail.
type DisbursementDetail struct {
	TxnDate     string          `json:"txn_date"`
	BankAccount string          `json:"bank_account"`
	Payee       string          `json:"payee"`
	Memo        string          `json:"memo"`
	Total       decimal.Decimal `json:"total"`
	Lines       []ResponseLine  `json:"lines"`
}

// BillDetail is the created-bill detail.
type BillDetail struct {
	TxnDate string          `json:"txn_date"`
	Vendor  string          `json:"vendor"`
	Memo    string          `json:"memo"`
	Total   decimal.Decimal `json:"total"`
	Lines   []ResponseLine  `json:"lines"`
}

// SubmitResponse is one per-draft response from the gateway, in request
// order. At most one detail pointer is set, selected by Kind.
type SubmitResponse struct {
	StatusCode     int    `json:"status_code"`
	StatusSeverity string `json:"status_severity"`
	StatusMessage  string `json:"status_message"`

	Kind         ResponseKind        `json:"kind"`
	Deposit      *DepositDetail      `json:"deposit,omitempty"`
	Disbursement *DisbursementDetail `json:"disbursement,omitempty"`
	Bill         *BillDetail         `json:"bill,omitempty"`
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Reconcile pairs each response with its originating draft by position and
// produces one outcome per draft. The returned bool is true iff every
// outcome succeeded; it gates whether the caller archives the source file.
//
// A response count that does not match the draft count violates the gateway
// contract and is returned as an error rather than guessed around.
func Reconcile(drafts []TransactionDraft, responses []SubmitResponse) ([]SubmissionOutcome, bool, error) {
	if len(responses) != len(drafts) {
		return nil, false, fmt.Errorf(
			"reconcile: gateway returned %d responses for %d drafts", len(responses), len(drafts))
	}

	outcomes := make([]SubmissionOutcome, len(drafts))
	allOK := true

	for i, resp := range responses {
		outcome := SubmissionOutcome{
			DraftIndex:     i,
			RequestID:      drafts[i].RequestID,
			StatusCode:     resp.StatusCode,
			StatusSeverity: resp.StatusSeverity,
			StatusMessage:  resp.StatusMessage,
		}

		summary, lines, known := unpackDetail(resp)

		switch {
		case !known:
			outcome.StatusMessage = fmt.Sprintf(
				"unrecognized response shape (status %d: %s)", resp.StatusCode, resp.StatusMessage)
		case resp.StatusCode == 0:
			outcome.Succeeded = true
			outcome.Created = summary
		default:
			outcome.FailureDetail = lines
		}

		if !outcome.Succeeded {
			allOK = false
		}
		outcomes[i] = outcome
	}

	return outcomes, allOK, nil
}

// unpackDetail extracts the created summary and the diagnostic line detail
// from a response, matched exhaustively over the detail union. known is
// false for the Unknown arm or a missing detail pointer.
func unpackDetail(resp SubmitResponse) (*CreatedSummary, []FailureLine, bool) {
	switch resp.Kind {
	case ResponseDeposit:
		if resp.Deposit == nil {
			return nil, nil, false
		}
		return &CreatedSummary{
				Counterparty: resp.Deposit.ToAccount,
				Total:        resp.Deposit.Total,
			},
			failureLines(resp.Deposit.Lines), true

	case ResponseDisbursement:
		if resp.Disbursement == nil {
			return nil, nil, false
		}
		return &CreatedSummary{
				Counterparty: resp.Disbursement.Payee,
				Total:        resp.Disbursement.Total,
			},
			failureLines(resp.Disbursement.Lines), true

	case ResponseBill:
		if resp.Bill == nil {
			return nil, nil, false
		}
		return &CreatedSummary{
				Counterparty: resp.Bill.Vendor,
				Total:        resp.Bill.Total,
			},
			failureLines(resp.Bill.Lines), true

	case ResponseUnknown:
		return nil, nil, false

	default:
		return nil, nil, false
	}
}

// failureLines copies the response's own detail lines for diagnostic output.
func failureLines(lines []ResponseLine) []FailureLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]FailureLine, len(lines))
	for i, line := range lines {
		out[i] = FailureLine{
			Account: line.Account,
			Memo:    line.Memo,
			Amount:  line.Amount,
		}
	}
	return out
}
