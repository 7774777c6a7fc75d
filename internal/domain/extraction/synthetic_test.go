package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseSyntheticReceipts(t *testing.T) {
	gen := NewReceiptGenerator(42)
	extractor := New(WithClock(syntheticClock))

	for _, receipt := range gen.Receipts(50) {
		record := extractor.Parse("synthetic.txt", receipt.Text, Inputs{})

		assert.Equal(t, receipt.Vendor, record.Vendor, "text:\n%s", receipt.Text)
		assert.Equal(t, receipt.Date, record.Date, "text:\n%s", receipt.Text)
		require.True(t, record.Amount.Valid, "text:\n%s", receipt.Text)
		assert.True(t, record.Amount.Decimal.Equal(receipt.Amount),
			"want %s got %s in:\n%s", receipt.Amount, record.Amount.Decimal, receipt.Text)
		assert.Equal(t, "₹", record.Currency)
	}
}

func BenchmarkParse(b *testing.B) {
	gen := NewReceiptGenerator(42)
	receipts := gen.Receipts(100)
	extractor := New(WithClock(syntheticClock))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = extractor.Parse("bench.txt", receipts[i%len(receipts)].Text, Inputs{})
	}
}
