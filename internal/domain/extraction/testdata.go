package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// ReceiptGenerator produces synthetic receipt texts using gofakeit. The
// generated expectations let tests exercise the full extraction flow against
// inputs with realistic noise.
type ReceiptGenerator struct {
	faker *gofakeit.Faker
}

// NewReceiptGenerator creates a generator with a fixed seed for
// reproducibility.
func NewReceiptGenerator(seed int64) *ReceiptGenerator {
	return &ReceiptGenerator{faker: gofakeit.New(seed)}
}

// SyntheticReceipt pairs generated receipt text with the values extraction
// should recover from it.
type SyntheticReceipt struct {
	Text   string
	Vendor string
	Date   time.Time
	Amount decimal.Decimal
}

// Receipt generates one synthetic receipt. The vendor appears as the first
// line, the date is day-first, and the total carries an explicit label so
// each field has exactly one correct answer.
func (g *ReceiptGenerator) Receipt() SyntheticReceipt {
	vendor := g.faker.Company()
	date := g.faker.DateRange(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	).Truncate(24 * time.Hour)
	amount := decimal.NewFromFloat(g.faker.Float64Range(10, 9999)).Round(2)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", vendor)
	fmt.Fprintf(&b, "%s\n", g.faker.Street())
	for i := 0; i < g.faker.Number(1, 4); i++ {
		fmt.Fprintf(&b, "%s %d.%02d\n", g.faker.ProductName(), g.faker.Number(1, 999), g.faker.Number(0, 99))
	}
	fmt.Fprintf(&b, "Date: %02d-%02d-%d\n", date.Day(), int(date.Month()), date.Year())
	fmt.Fprintf(&b, "Total Amount: ₹%s\n", amount.StringFixed(2))
	fmt.Fprintf(&b, "Thank you for your visit\n")

	return SyntheticReceipt{
		Text:   b.String(),
		Vendor: vendor,
		Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Amount: amount,
	}
}

// Receipts generates count synthetic receipts.
func (g *ReceiptGenerator) Receipts(count int) []SyntheticReceipt {
	out := make([]SyntheticReceipt, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.Receipt())
	}
	return out
}
