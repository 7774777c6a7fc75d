// Package export renders extraction results as CSV, JSON, and XLSX.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
	"github.com/FACorreiaa/receipt-analyzer/pkg/money"
)

const dateLayout = "2006-01-02"

// Row is the flat, format-agnostic projection of one receipt. Absent date
// and amount render as empty strings rather than zero values. CurrencyCode
// carries the ISO-4217 code resolved from the detected symbol, for consumers
// that cannot work with a bare symbol.
type Row struct {
	Filename     string `csv:"filename" json:"filename"`
	Vendor       string `csv:"vendor" json:"vendor"`
	Date         string `csv:"date" json:"date"`
	Amount       string `csv:"amount" json:"amount"`
	Currency     string `csv:"currency" json:"currency"`
	CurrencyCode string `csv:"currency_code" json:"currency_code"`
	Category     string `csv:"category" json:"category"`
}

var xlsxHeader = []any{"filename", "vendor", "date", "amount", "currency", "currency_code", "category"}

// Rows converts records to export rows preserving input order. Amounts are
// formatted to the currency's minor-unit precision.
func Rows(records []extraction.ReceiptRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			Filename: rec.Filename,
			Vendor:   rec.Vendor,
			Currency: rec.Currency,
			Category: rec.Category,
		}
		if !rec.Date.IsZero() {
			row.Date = rec.Date.Format(dateLayout)
		}
		if rec.Amount.Valid {
			row.Amount = money.NewFromSymbol(rec.Amount.Decimal, rec.Currency).StringFixed()
		}
		if rec.Currency != "" {
			row.CurrencyCode = money.CodeForSymbol(rec.Currency)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []extraction.ReceiptRecord) error {
	if err := gocsv.Marshal(Rows(records), w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []extraction.ReceiptRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Rows(records)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteXLSX writes records as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, records []extraction.ReceiptRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Receipts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range Rows(records) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		values := []any{row.Filename, row.Vendor, row.Date, row.Amount, row.Currency, row.CurrencyCode, row.Category}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
