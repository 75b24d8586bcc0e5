// =============================================================================
// Float to Ledger Converter - Ledger Gateway Boundary
// =============================================================================
//
// This package is the boundary with the external accounting system. The
// engine performs exactly two round-trips per run, both defined here:
//
//   - FetchReferenceData : one blocking call returning the active account
//     ids and payee names (inactive entries are excluded by the gateway).
//   - SubmitBatch        : one blocking call submitting the full ordered
//     draft sequence as a single request. The gateway is configured to
//     continue past per-item errors, and its response sequence matches the
//     request in length and order.
//
// No retries, no backoff, no caching: a failure in either call is fatal to
// the run and surfaces to the caller as-is.
//
// =============================================================================

package ledger

import (
	"context"

	"github.com/tbickford/float2ledger/internal/batch"
)

// Gateway is the accounting-system collaborator the engine posts through.
type Gateway interface {
	// FetchReferenceData returns the active account ids and payee names.
	FetchReferenceData(ctx context.Context) (accountIDs, payeeNames []string, err error)

	// SubmitBatch submits the ordered drafts as one request and returns one
	// response per draft, in the same order.
	SubmitBatch(ctx context.Context, drafts []batch.TransactionDraft) ([]batch.SubmitResponse, error)
}
