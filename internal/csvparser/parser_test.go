package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseHeaderKeyedRecords(t *testing.T) {
	path := writeCSV(t, "Description,Total,GL Code ID\nTeam lunch,52.50,Meals\nParking,8.00,Travel\n")

	records, err := Parse(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Team lunch", records[0]["Description"])
	assert.Equal(t, "52.50", records[0]["Total"])
	assert.Equal(t, "Travel", records[1]["GL Code ID"])
}

func TestParseSkipsEmptyRows(t *testing.T) {
	path := writeCSV(t, "Description,Total\nTeam lunch,52.50\n,\nParking,8.00\n")

	records, err := Parse(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseShortRowGetsEmptyValues(t *testing.T) {
	path := writeCSV(t, "Description,Total,Tax\nTeam lunch,52.50\n")

	records, err := Parse(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0]["Tax"])
}

func TestParseHeaderOnlyFileYieldsNoRecords(t *testing.T) {
	path := writeCSV(t, "Description,Total\n")

	records, err := Parse(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestParseQuotedFields(t *testing.T) {
	path := writeCSV(t, "Description,Merchant Name\n\"Lunch, offsite\",\"Acme \"\"East\"\"\"\n")

	records, err := Parse(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Lunch, offsite", records[0]["Description"])
	assert.Equal(t, `Acme "East"`, records[0]["Merchant Name"])
}
