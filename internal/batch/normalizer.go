// =============================================================================
// Float to Ledger Converter - Record Normalizer
// =============================================================================
//
// The normalizer maps raw field-keyed records (arbitrary header casing,
// optional split columns) onto canonical records, and detects the batch
// shape exactly once:
//
//   - Kind      : reimbursement iff a "report name" column is present,
//                 standard otherwise.
//   - MaxSplits : the largest index among "line item N ..." columns in the
//                 first record; zero when no split columns exist.
//
// Canonicalization is case-folding of keys only. Values pass through
// untouched. The detected shape is returned as a typed value and threaded
// through every later stage.
//
// =============================================================================

package batch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// splitColumnPattern matches numbered split columns such as
// "line item 3 gl code id" after case folding.
var splitColumnPattern = regexp.MustCompile(`^line item (\d+) `)

// Normalize case-folds the keys of every record, detects the batch shape
// from the first record, and checks that the batch carries every column its
// shape requires.
//
// RETURNS:
//   - The canonical records, in input order.
//   - The detected BatchShape.
//   - A *MalformedBatchError when the batch is empty or is missing required
//     columns; nil otherwise.
func Normalize(raw []map[string]string) ([]Record, BatchShape, error) {
	if len(raw) == 0 {
		return nil, BatchShape{}, &MalformedBatchError{Reason: "empty batch"}
	}

	records := make([]Record, len(raw))
	for i, row := range raw {
		rec := make(Record, len(row))
		for key, value := range row {
			rec[canonicalKey(key)] = value
		}
		records[i] = rec
	}

	shape := detectShape(records[0])

	if missing := missingFields(records[0], shape); len(missing) > 0 {
		return nil, shape, &MalformedBatchError{
			Reason:        "missing required fields",
			MissingFields: missing,
		}
	}

	return records, shape, nil
}

// canonicalKey folds a raw header onto its canonical form: lower-cased,
// surrounding whitespace trimmed, interior runs of whitespace collapsed.
func canonicalKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), " ")
}

// detectShape derives the batch shape from the first record's field set.
func detectShape(first Record) BatchShape {
	shape := BatchShape{Kind: KindStandard}

	if _, ok := first[FieldReportName]; ok {
		shape.Kind = KindReimbursement
	}

	for key := range first {
		m := splitColumnPattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > shape.MaxSplits {
			shape.MaxSplits = n
		}
	}

	return shape
}

// missingFields lists the canonical fields the shape requires that are
// absent from the record, in a stable order.
func missingFields(first Record, shape BatchShape) []string {
	var required []string

	switch {
	case shape.Kind == KindReimbursement:
		required = []string{
			FieldDescription, FieldExpenseDate, FieldTotal,
			FieldSubtotal, FieldTax, FieldRequester, FieldGLCode,
		}
	case shape.MaxSplits > 0:
		required = []string{
			FieldDescription, FieldExpenseDate, FieldMerchantName,
			FieldTotal, FieldTax,
		}
		for i := 1; i <= shape.MaxSplits; i++ {
			required = append(required,
				SplitField(i, "gl code id"),
				SplitField(i, "description"),
				SplitField(i, "amount"),
				SplitField(i, "tax amount"),
			)
		}
	default:
		required = []string{
			FieldDescription, FieldExpenseDate, FieldMerchantName,
			FieldTotal, FieldSubtotal, FieldTax, FieldGLCode,
		}
	}

	var missing []string
	for _, field := range required {
		if _, ok := first[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// SplitField returns the canonical column name for split slot i, e.g.
// SplitField(2, "amount") -> "line item 2 amount".
func SplitField(i int, suffix string) string {
	return fmt.Sprintf("line item %d %s", i, suffix)
}
