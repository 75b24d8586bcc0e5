package batch

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDepositRoundTrip walks one interest-credit record through every stage:
// normalize -> validate -> build -> (synthetic gateway response) -> reconcile.
func TestDepositRoundTrip(t *testing.T) {
	rows := []map[string]string{{
		"Description":   "Interest credit",
		"Expense Date":  "24-03-15",
		"Merchant Name": "Acme",
		"Total":         "-150.00",
		"Subtotal":      "0.00",
		"Tax":           "0",
		"GL Code ID":    "A100",
	}}

	records, shape, err := Normalize(rows)
	require.NoError(t, err)
	assert.Equal(t, KindStandard, shape.Kind)

	ref := NewReferenceData([]string{"A100"}, []string{"Acme"})
	report := Validate(records, shape, ref)
	require.True(t, report.OK, "violations: %v", report.Violations)

	drafts, skips := NewBuilder(BuilderOptions{}).BuildBatch(records, shape)
	require.Empty(t, skips)
	require.Len(t, drafts, 1)

	assert.Equal(t, TxnDeposit, drafts[0].Type)
	require.Len(t, drafts[0].Lines, 1)
	assert.Equal(t, "A100", drafts[0].Lines[0].AccountID)
	assert.True(t, drafts[0].Lines[0].Amount.Equal(decimal.RequireFromString("150.00")))

	// Synthetic gateway response for the created deposit.
	responses := []SubmitResponse{{
		StatusCode:     0,
		StatusSeverity: "info",
		StatusMessage:  "Status OK",
		Kind:           ResponseDeposit,
		Deposit: &DepositDetail{
			TxnDate:   "2024-03-15",
			ToAccount: "Float Financial",
			Memo:      "Interest credit",
			Total:     decimal.RequireFromString("150.00"),
			Lines: []ResponseLine{{
				Account: "A100",
				Amount:  decimal.RequireFromString("150.00"),
			}},
		},
	}}

	outcomes, allOK, err := Reconcile(drafts, responses)
	require.NoError(t, err)

	assert.True(t, allOK)
	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Created)
	assert.Equal(t, "Float Financial", outcomes[0].Created.Counterparty)
	assert.True(t, outcomes[0].Created.Total.Equal(decimal.RequireFromString("150.00")))
}

// TestValidationAbortsBeforeBuild mirrors the batch-aborting rule: a single
// unknown reference stops the run before any draft exists, even when every
// other record is clean.
func TestValidationAbortsBeforeBuild(t *testing.T) {
	clean := standardRow()
	dirty := standardRow()
	dirty["GL Code ID"] = "Not An Account"

	records, shape, err := Normalize([]map[string]string{clean, dirty})
	require.NoError(t, err)

	report := Validate(records, shape, snapshot())
	require.False(t, report.OK)
	require.Len(t, report.Violations, 1)
}
