// =============================================================================
// Float to Ledger Converter - HTTP Ledger Gateway Client
// =============================================================================
//
// JSON-over-HTTP implementation of the Gateway interface, for deployments
// where the accounting system sits behind a gateway service:
//
//   GET  {base}/reference-data : {"account_ids": [...], "payee_names": [...]}
//   POST {base}/batches        : {"batch_id": ..., "continue_on_error": true,
//                                 "transactions": [...]}
//                             -> {"responses": [...]}
//
// The client deliberately carries no retry or timeout logic of its own; a
// hang or failure propagates to the caller as a fatal run error.
//
// =============================================================================

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tbickford/float2ledger/internal/batch"
)

var _ Gateway = (*Client)(nil)

// Client talks to a remote ledger gateway over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	// appName identifies this tool to the gateway, sent as User-Agent.
	appName string
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
		appName: "float2ledger",
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type referenceDataResponse struct {
	AccountIDs []string `json:"account_ids"`
	PayeeNames []string `json:"payee_names"`
}

type wireLine struct {
	Account   string          `json:"account"`
	Amount    decimal.Decimal `json:"amount"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Memo      string          `json:"memo,omitempty"`
}

type wireTransaction struct {
	RequestID    string     `json:"request_id"`
	Type         string     `json:"type"`
	TxnDate      string     `json:"txn_date"`
	Counterparty string     `json:"counterparty"`
	Memo         string     `json:"memo,omitempty"`
	Lines        []wireLine `json:"lines"`
}

type submitBatchRequest struct {
	BatchID string `json:"batch_id"`
	// ContinueOnError tells the gateway to process every transaction even
	// when one fails, so the response set stays positionally complete.
	ContinueOnError bool              `json:"continue_on_error"`
	Transactions    []wireTransaction `json:"transactions"`
}

type submitBatchResponse struct {
	Responses []batch.SubmitResponse `json:"responses"`
}

// =============================================================================
// GATEWAY IMPLEMENTATION
// =============================================================================

// FetchReferenceData retrieves the active account and payee lists.
func (c *Client) FetchReferenceData(ctx context.Context) ([]string, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reference-data", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("reference data request: %w", err)
	}
	req.Header.Set("User-Agent", c.appName)

	var body referenceDataResponse
	if err := c.do(req, &body); err != nil {
		return nil, nil, fmt.Errorf("fetch reference data: %w", err)
	}
	return body.AccountIDs, body.PayeeNames, nil
}

// SubmitBatch posts the drafts as one request and returns the per-draft
// responses in request order.
func (c *Client) SubmitBatch(ctx context.Context, drafts []batch.TransactionDraft) ([]batch.SubmitResponse, error) {
	payload := submitBatchRequest{
		BatchID:         uuid.NewString(),
		ContinueOnError: true,
		Transactions:    make([]wireTransaction, len(drafts)),
	}
	for i, draft := range drafts {
		payload.Transactions[i] = toWire(draft)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/batches", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.appName)

	var body submitBatchResponse
	if err := c.do(req, &body); err != nil {
		return nil, fmt.Errorf("submit batch: %w", err)
	}
	return body.Responses, nil
}

// do executes a request and decodes a JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// toWire flattens a draft into its wire representation.
func toWire(draft batch.TransactionDraft) wireTransaction {
	wt := wireTransaction{
		RequestID:    draft.RequestID,
		Type:         draft.Type.String(),
		TxnDate:      draft.TxnDate,
		Counterparty: draft.Counterparty,
		Memo:         draft.Memo,
		Lines:        make([]wireLine, len(draft.Lines)),
	}
	for i, line := range draft.Lines {
		wt.Lines[i] = wireLine{
			Account:   line.AccountID,
			Amount:    line.Amount,
			TaxAmount: line.TaxAmount,
			Memo:      line.Memo,
		}
	}
	return wt
}
