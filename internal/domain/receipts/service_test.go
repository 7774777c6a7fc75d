package receipts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
)

type memoryStore struct {
	inserted []extraction.ReceiptRecord
}

func (m *memoryStore) Insert(_ context.Context, record extraction.ReceiptRecord) (*Receipt, error) {
	m.inserted = append(m.inserted, record)
	return &Receipt{Filename: record.Filename, Vendor: record.Vendor}, nil
}

func (m *memoryStore) List(context.Context) ([]Receipt, error) {
	out := make([]Receipt, 0, len(m.inserted))
	for _, rec := range m.inserted {
		out = append(out, Receipt{Filename: rec.Filename, Vendor: rec.Vendor})
	}
	return out, nil
}

func fixedServiceClock() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestServiceProcessFile(t *testing.T) {
	ctx := context.Background()
	extractor := extraction.New(extraction.WithClock(fixedServiceClock))

	t.Run("extracts and stores a text receipt", func(t *testing.T) {
		store := &memoryStore{}
		cache := NewVendorCache()
		require.NoError(t, cache.Refresh(ctx, &stubVendorLister{vendors: []string{"BESCOM"}}))
		svc := NewService(extractor, nil, cache, store, nil, nil)

		text := "BESCOM Electricity Bill\nDate: 01-04-2024\nTotal Amount: Rs. 450.00"
		record, err := svc.ProcessFile(ctx, strings.NewReader(text), "bescom_apr.txt")
		require.NoError(t, err)

		assert.Equal(t, "BESCOM", record.Vendor)
		assert.Equal(t, "Electricity", record.Category)
		require.Len(t, store.inserted, 1)
		assert.Equal(t, "bescom_apr.txt", store.inserted[0].Filename)
	})

	t.Run("unsupported format is a hard error", func(t *testing.T) {
		svc := NewService(extractor, nil, nil, nil, nil, nil)

		_, err := svc.ProcessFile(ctx, strings.NewReader("data"), "receipt.docx")
		require.Error(t, err)
	})

	t.Run("empty file is a hard error", func(t *testing.T) {
		svc := NewService(extractor, nil, nil, nil, nil, nil)

		_, err := svc.ProcessFile(ctx, strings.NewReader(""), "empty.txt")
		require.ErrorIs(t, err, ErrEmptyText)

		// Blank OCR output is just as empty as no output.
		_, err = svc.ProcessFile(ctx, strings.NewReader(" \n \t \n"), "blank.txt")
		require.ErrorIs(t, err, ErrEmptyText)
	})
}

func TestServiceProcessText(t *testing.T) {
	ctx := context.Background()
	extractor := extraction.New(extraction.WithClock(fixedServiceClock))

	t.Run("works without store or index", func(t *testing.T) {
		svc := NewService(extractor, nil, nil, nil, nil, nil)

		record := svc.ProcessText(ctx, "note.txt", "Swiggy Order\nTotal: ₹320.50")
		assert.Equal(t, "Food", record.Category)
		assert.True(t, record.Amount.Valid)
	})

	t.Run("feeds the search index", func(t *testing.T) {
		index, err := NewSearchIndex()
		require.NoError(t, err)
		t.Cleanup(func() { _ = index.Close() })
		svc := NewService(extractor, nil, nil, nil, index, nil)

		svc.ProcessText(ctx, "swiggy.txt", "Swiggy Order\nTotal: ₹320.50")

		count, err := index.DocumentCount()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), count)
	})
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	extractor := extraction.New()

	t.Run("fails without a store", func(t *testing.T) {
		svc := NewService(extractor, nil, nil, nil, nil, nil)
		_, err := svc.List(ctx)
		require.Error(t, err)
	})

	t.Run("returns stored receipts", func(t *testing.T) {
		store := &memoryStore{}
		svc := NewService(extractor, nil, nil, store, nil, nil)

		svc.ProcessText(ctx, "a.txt", "Swiggy Order\nTotal: ₹100.00")
		receipts, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, receipts, 1)
		assert.Equal(t, "a.txt", receipts[0].Filename)
	})
}
