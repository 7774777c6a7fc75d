package receipts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
)

// receiptDocument is the searchable projection of one extraction result.
type receiptDocument struct {
	Filename string     `json:"filename"`
	Vendor   string     `json:"vendor"`
	Category string     `json:"category"`
	Currency string     `json:"currency"`
	Amount   float64    `json:"amount"`
	Date     *time.Time `json:"date,omitempty"`
}

// SearchQuery filters indexed receipts. Zero-valued fields are ignored.
type SearchQuery struct {
	Text      string
	Vendor    string
	Category  string
	DateFrom  time.Time
	DateTo    time.Time
	AmountMin float64
	AmountMax float64
	Limit     int
}

// SearchHit is one matching receipt with its relevance score.
type SearchHit struct {
	Filename string
	Vendor   string
	Category string
	Score    float64
}

// SearchIndex provides full-text and range search over processed receipts
// using Bleve.
type SearchIndex struct {
	index   bleve.Index
	indexMu sync.RWMutex
}

// NewSearchIndex creates an in-memory receipt search index.
func NewSearchIndex() (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildReceiptMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func buildReceiptMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	numericFieldMapping := bleve.NewNumericFieldMapping()
	dateFieldMapping := bleve.NewDateTimeFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("filename", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("vendor", textFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("currency", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("amount", numericFieldMapping)
	docMapping.AddFieldMappingsAt("date", dateFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name

	return indexMapping
}

// Index adds or updates one receipt, keyed by filename.
func (si *SearchIndex) Index(record extraction.ReceiptRecord) error {
	si.indexMu.Lock()
	defer si.indexMu.Unlock()

	doc := receiptDocument{
		Filename: record.Filename,
		Vendor:   record.Vendor,
		Category: record.Category,
		Currency: record.Currency,
	}
	if record.Amount.Valid {
		doc.Amount, _ = record.Amount.Decimal.Float64()
	}
	if !record.Date.IsZero() {
		d := record.Date
		doc.Date = &d
	}

	return si.index.Index(doc.Filename, doc)
}

// Search runs the query and returns hits ordered by relevance.
func (si *SearchIndex) Search(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	si.indexMu.RLock()
	defer si.indexMu.RUnlock()

	conjuncts := make([]query.Query, 0, 4)

	if q.Text != "" {
		matchQuery := bleve.NewMatchQuery(q.Text)
		matchQuery.SetFuzziness(1)
		conjuncts = append(conjuncts, matchQuery)
	}
	if q.Vendor != "" {
		vendorQuery := bleve.NewMatchQuery(q.Vendor)
		vendorQuery.SetField("vendor")
		conjuncts = append(conjuncts, vendorQuery)
	}
	if q.Category != "" {
		categoryQuery := bleve.NewTermQuery(q.Category)
		categoryQuery.SetField("category")
		conjuncts = append(conjuncts, categoryQuery)
	}
	if !q.DateFrom.IsZero() || !q.DateTo.IsZero() {
		from, to := q.DateFrom, q.DateTo
		if to.IsZero() {
			to = time.Now().AddDate(100, 0, 0)
		}
		dateQuery := bleve.NewDateRangeQuery(from, to)
		dateQuery.SetField("date")
		conjuncts = append(conjuncts, dateQuery)
	}
	if q.AmountMin > 0 || q.AmountMax > 0 {
		min, max := q.AmountMin, q.AmountMax
		if max == 0 {
			max = float64(1 << 40)
		}
		incl := true
		amountQuery := bleve.NewNumericRangeInclusiveQuery(&min, &max, &incl, &incl)
		amountQuery.SetField("amount")
		conjuncts = append(conjuncts, amountQuery)
	}

	var searchQuery query.Query
	switch len(conjuncts) {
	case 0:
		searchQuery = bleve.NewMatchAllQuery()
	case 1:
		searchQuery = conjuncts[0]
	default:
		searchQuery = bleve.NewConjunctionQuery(conjuncts...)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	searchRequest := bleve.NewSearchRequest(searchQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"vendor", "category"}

	searchResults, err := si.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search receipts: %w", err)
	}

	hits := make([]SearchHit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		h := SearchHit{Filename: hit.ID, Score: hit.Score}
		if vendor, ok := hit.Fields["vendor"].(string); ok {
			h.Vendor = vendor
		}
		if category, ok := hit.Fields["category"].(string); ok {
			h.Category = category
		}
		hits = append(hits, h)
	}

	return hits, nil
}

// DocumentCount returns the number of indexed receipts.
func (si *SearchIndex) DocumentCount() (uint64, error) {
	si.indexMu.RLock()
	defer si.indexMu.RUnlock()

	return si.index.DocCount()
}

// Close releases index resources.
func (si *SearchIndex) Close() error {
	si.indexMu.Lock()
	defer si.indexMu.Unlock()

	if si.index != nil {
		return si.index.Close()
	}
	return nil
}
