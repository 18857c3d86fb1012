package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/lgu-leganes/bizportal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func str(s string) *string { return &s }

func sampleBusinesses() []model.Business {
	return []model.Business{
		{
			BusinessID:   "BIZ001",
			BusinessName: "Leganes General Store",
			RepName:      "Juan Dela Cruz",
			LongLat:      "10.7868,122.5894",
			Barangay:     "Poblacion",
			Municipality: "Leganes",
			Province:     "Iloilo",
			Street:       "Rizal Street",
			HouseNo:      "123",
			DTIExpiry:    str("2024-12-31"),
			SECExpiry:    str("2025-12-31"),
			CDAExpiry:    nil,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBusinesses()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, headers, records[0])
	assert.Equal(t, "BIZ001", records[1][0])
	assert.Equal(t, "2024-12-31", records[1][9])
	// nil expiry serializes as an empty cell
	assert.Equal(t, "", records[1][11])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleBusinesses()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers[0], rows[0][0])
	assert.Equal(t, "BIZ001", rows[1][0])
}
