package receipts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
	"github.com/FACorreiaa/receipt-analyzer/internal/textextract"
	"github.com/FACorreiaa/receipt-analyzer/pkg/observability"
)

// ErrEmptyText is returned when a file yields no usable text to extract from.
var ErrEmptyText = errors.New("no text extracted from file")

// ReceiptStore persists extraction results. A nil store means parse-only mode.
type ReceiptStore interface {
	Insert(ctx context.Context, record extraction.ReceiptRecord) (*Receipt, error)
	List(ctx context.Context) ([]Receipt, error)
}

// Service runs the full pipeline for one uploaded file: text extraction,
// field extraction against the current vendor snapshot, and optional
// persistence.
type Service struct {
	extractor *extraction.Extractor
	rules     *extraction.RuleSet
	vendors   *VendorCache
	store     ReceiptStore
	index     *SearchIndex
	logger    *slog.Logger
}

// NewService creates a receipts service. store and index may be nil for
// parse-only use.
func NewService(extractor *extraction.Extractor, rules *extraction.RuleSet, vendors *VendorCache, store ReceiptStore, index *SearchIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		extractor: extractor,
		rules:     rules,
		vendors:   vendors,
		store:     store,
		index:     index,
		logger:    logger,
	}
}

// ProcessFile extracts fields from one uploaded file. Unsupported formats and
// files with no usable text fail hard rather than producing an all-default
// record.
func (s *Service) ProcessFile(ctx context.Context, r io.Reader, filename string) (extraction.ReceiptRecord, error) {
	strategy := string(s.extractor.Strategy())
	start := time.Now()
	defer func() {
		observability.ProcessDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}()

	text, err := textextract.Extract(r, filename)
	if err != nil {
		observability.ReceiptsProcessed.WithLabelValues(strategy, "error").Inc()
		return extraction.ReceiptRecord{}, fmt.Errorf("extract text from %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		observability.ReceiptsProcessed.WithLabelValues(strategy, "error").Inc()
		return extraction.ReceiptRecord{}, fmt.Errorf("%s: %w", filename, ErrEmptyText)
	}

	record := s.ProcessText(ctx, filename, text)
	observability.ReceiptsProcessed.WithLabelValues(strategy, "ok").Inc()
	return record, nil
}

// ProcessText extracts fields from already-available text and stores the
// result when a store is configured.
func (s *Service) ProcessText(ctx context.Context, filename, text string) extraction.ReceiptRecord {
	var known []string
	if s.vendors != nil {
		known = s.vendors.Snapshot()
	}

	record := s.extractor.Parse(filename, text, extraction.Inputs{
		Rules:        s.rules,
		KnownVendors: known,
	})

	s.trackDefaults(record)

	if s.store != nil {
		if _, err := s.store.Insert(ctx, record); err != nil {
			s.logger.Error("failed to store receipt",
				slog.String("filename", filename),
				slog.Any("error", err),
			)
		}
	}
	if s.index != nil {
		if err := s.index.Index(record); err != nil {
			s.logger.Error("failed to index receipt",
				slog.String("filename", filename),
				slog.Any("error", err),
			)
		}
	}

	return record
}

// List returns all stored receipts. It fails when the service runs without a
// store.
func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	if s.store == nil {
		return nil, errors.New("receipt store not configured")
	}
	return s.store.List(ctx)
}

// Search runs a query against the search index.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	if s.index == nil {
		return nil, errors.New("search index not configured")
	}
	return s.index.Search(ctx, q)
}

func (s *Service) trackDefaults(record extraction.ReceiptRecord) {
	if record.Vendor == extraction.UnknownVendor || record.Vendor == extraction.UnknownVendorLabel {
		observability.FieldsDefaulted.WithLabelValues("vendor").Inc()
	}
	if !record.Amount.Valid {
		observability.FieldsDefaulted.WithLabelValues("amount").Inc()
	}
	if record.Date.IsZero() {
		observability.FieldsDefaulted.WithLabelValues("date").Inc()
	}
	if record.Category == extraction.CategoryOther {
		observability.FieldsDefaulted.WithLabelValues("category").Inc()
	}
}
