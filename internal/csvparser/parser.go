// =============================================================================
// Float to Ledger Converter - CSV Source Parser
// =============================================================================
//
// This module reads an expense export CSV into a sequence of header-keyed
// records. The first line is the header; every later row is keyed by it,
// giving the stable key set across all records that the batch engine's
// normalizer assumes.
//
// The parser does no interpretation of values: canonicalization, shape
// detection, and validation all happen downstream in the batch engine.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Parse reads a CSV file and returns one map per data row, keyed by the
// header row. Rows whose cells are all blank are skipped. A row with fewer
// cells than the header gets empty strings for the missing columns.
func Parse(filePath string) ([]map[string]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	return rowsToMaps(allRows[1:], headers), nil
}

// cleanHeaders trims whitespace and names any blank header by its column
// position so it still keys consistently.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

// rowsToMaps converts data rows to header-keyed maps, skipping empty rows.
func rowsToMaps(rows [][]string, headers []string) []map[string]string {
	records := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		rec := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rec[header] = strings.TrimSpace(row[i])
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}

	return records
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
