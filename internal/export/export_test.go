package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
)

func sampleRecords() []extraction.ReceiptRecord {
	return []extraction.ReceiptRecord{
		{
			Filename: "bescom_apr.txt",
			Vendor:   "BESCOM",
			Date:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.NewNullDecimal(decimal.RequireFromString("450")),
			Currency: "₹",
			Category: "Electricity",
		},
		{
			Filename: "undated.txt",
			Vendor:   "Unknown",
			Category: "Other",
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleRecords())
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-04-01", rows[0].Date)
	assert.Equal(t, "450.00", rows[0].Amount)
	assert.Equal(t, "₹", rows[0].Currency)
	assert.Equal(t, "INR", rows[0].CurrencyCode)

	assert.Empty(t, rows[1].Date)
	assert.Empty(t, rows[1].Amount)
	assert.Empty(t, rows[1].CurrencyCode)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "filename,vendor,date,amount,currency,currency_code,category", lines[0])
	assert.Contains(t, lines[1], "BESCOM")
	assert.Contains(t, lines[1], "450.00")
	assert.Contains(t, lines[1], "INR")
	assert.Contains(t, lines[2], "Unknown")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "BESCOM", rows[0].Vendor)
	assert.Empty(t, rows[1].Amount)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "filename", rows[0][0])
	assert.Equal(t, "BESCOM", rows[1][1])
	assert.Equal(t, "450.00", rows[1][3])
	assert.Equal(t, "INR", rows[1][5])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
