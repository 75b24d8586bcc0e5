package batch

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chequeDraft(id string) TransactionDraft {
	return TransactionDraft{
		RequestID:    id,
		Type:         TxnDisbursement,
		TxnDate:      "2024-03-15",
		Counterparty: "Acme Catering",
		Memo:         "Team lunch",
		Lines: []LineItem{{
			AccountID: "Meals & Entertainment",
			Amount:    decimal.RequireFromString("50.00"),
			Memo:      "Team lunch",
		}},
	}
}

func okChequeResponse() SubmitResponse {
	return SubmitResponse{
		StatusCode:     0,
		StatusSeverity: "info",
		StatusMessage:  "Status OK",
		Kind:           ResponseDisbursement,
		Disbursement: &DisbursementDetail{
			TxnDate:     "2024-03-15",
			BankAccount: "Float Financial",
			Payee:       "Acme Catering",
			Memo:        "Team lunch",
			Total:       decimal.RequireFromString("50.00"),
			Lines: []ResponseLine{{
				Account: "Meals & Entertainment",
				Memo:    "Team lunch",
				Amount:  decimal.RequireFromString("50.00"),
			}},
		},
	}
}

func TestReconcileSuccess(t *testing.T) {
	drafts := []TransactionDraft{chequeDraft("req-1")}

	outcomes, allOK, err := Reconcile(drafts, []SubmitResponse{okChequeResponse()})
	require.NoError(t, err)

	assert.True(t, allOK)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, "req-1", outcomes[0].RequestID)
	require.NotNil(t, outcomes[0].Created)
	assert.Equal(t, "Acme Catering", outcomes[0].Created.Counterparty)
	assert.True(t, outcomes[0].Created.Total.Equal(decimal.RequireFromString("50.00")))
	assert.Nil(t, outcomes[0].FailureDetail)
}

func TestReconcileFailureCarriesResponseDetail(t *testing.T) {
	resp := okChequeResponse()
	resp.StatusCode = 3001
	resp.StatusSeverity = "error"
	resp.StatusMessage = "Invalid account reference"
	// The detail the system returns may differ from what was submitted;
	// the outcome must surface the returned lines, not the draft's.
	resp.Disbursement.Lines = []ResponseLine{{
		Account: "Uncategorized Expenses",
		Memo:    "Team lunch",
		Amount:  decimal.RequireFromString("50.00"),
	}}

	outcomes, allOK, err := Reconcile([]TransactionDraft{chequeDraft("req-1")}, []SubmitResponse{resp})
	require.NoError(t, err)

	assert.False(t, allOK)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, 3001, outcomes[0].StatusCode)
	require.Len(t, outcomes[0].FailureDetail, 1)
	assert.Equal(t, "Uncategorized Expenses", outcomes[0].FailureDetail[0].Account)
	assert.Nil(t, outcomes[0].Created)
}

func TestReconcileMixedBatch(t *testing.T) {
	drafts := []TransactionDraft{chequeDraft("req-1"), chequeDraft("req-2")}

	failing := okChequeResponse()
	failing.StatusCode = 3001
	failing.StatusSeverity = "error"

	outcomes, allOK, err := Reconcile(drafts, []SubmitResponse{okChequeResponse(), failing})
	require.NoError(t, err)

	assert.False(t, allOK, "one failed outcome must fail the whole batch")
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Succeeded)
	assert.False(t, outcomes[1].Succeeded)
}

func TestReconcileUnknownShapeContinues(t *testing.T) {
	drafts := []TransactionDraft{chequeDraft("req-1"), chequeDraft("req-2")}

	unknown := SubmitResponse{
		StatusCode:    0,
		StatusMessage: "Status OK",
		Kind:          ResponseUnknown,
	}

	outcomes, allOK, err := Reconcile(drafts, []SubmitResponse{unknown, okChequeResponse()})
	require.NoError(t, err)

	assert.False(t, allOK)
	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Succeeded)
	assert.Contains(t, outcomes[0].StatusMessage, "unrecognized response shape")
	assert.True(t, outcomes[1].Succeeded, "reconciliation must continue past an unknown shape")
}

func TestReconcileMissingDetailPointerIsUnknown(t *testing.T) {
	resp := okChequeResponse()
	resp.Disbursement = nil

	outcomes, allOK, err := Reconcile([]TransactionDraft{chequeDraft("req-1")}, []SubmitResponse{resp})
	require.NoError(t, err)

	assert.False(t, allOK)
	assert.Contains(t, outcomes[0].StatusMessage, "unrecognized response shape")
}

func TestReconcileCountMismatch(t *testing.T) {
	drafts := []TransactionDraft{chequeDraft("req-1"), chequeDraft("req-2")}

	_, _, err := Reconcile(drafts, []SubmitResponse{okChequeResponse()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 responses for 2 drafts")
}

func TestReconcileDepositSummary(t *testing.T) {
	draft := TransactionDraft{
		RequestID:    "req-1",
		Type:         TxnDeposit,
		TxnDate:      "2024-03-15",
		Counterparty: "Float Financial",
		Lines: []LineItem{{
			AccountID: "A100",
			Amount:    decimal.RequireFromString("150.00"),
		}},
	}
	resp := SubmitResponse{
		StatusCode: 0,
		Kind:       ResponseDeposit,
		Deposit: &DepositDetail{
			TxnDate:   "2024-03-15",
			ToAccount: "Float Financial",
			Total:     decimal.RequireFromString("150.00"),
		},
	}

	outcomes, allOK, err := Reconcile([]TransactionDraft{draft}, []SubmitResponse{resp})
	require.NoError(t, err)

	assert.True(t, allOK)
	require.NotNil(t, outcomes[0].Created)
	assert.Equal(t, "Float Financial", outcomes[0].Created.Counterparty)
	assert.True(t, outcomes[0].Created.Total.Equal(decimal.RequireFromString("150.00")))
}

func TestResponseKindJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(ResponseBill)
	require.NoError(t, err)
	assert.Equal(t, `"bill"`, string(raw))

	var kind ResponseKind
	require.NoError(t, json.Unmarshal([]byte(`"deposit"`), &kind))
	assert.Equal(t, ResponseDeposit, kind)

	// A gateway kind this build does not know folds into Unknown.
	require.NoError(t, json.Unmarshal([]byte(`"journal_entry"`), &kind))
	assert.Equal(t, ResponseUnknown, kind)
}
