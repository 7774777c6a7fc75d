package extraction

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Strategy selects which of the two historical extraction pipelines runs.
// They evolved independently (interactive dashboard vs. upload API) with
// different scoring constants and fallback policies; both are kept as named
// variants rather than silently merged.
type Strategy string

const (
	// StrategyDashboard: per-line scored amount candidates, two-phase
	// context-first date search, known-vendor list with fuzzy fallback,
	// currency split from the winning amount token. The default.
	StrategyDashboard Strategy = "dashboard"

	// StrategyAPI: labeled-amount patterns with a max-value fallback, fixed
	// date format list, looser vendor header heuristic, standalone currency
	// detection with a default symbol.
	StrategyAPI Strategy = "api"
)

// MissingDatePolicy decides what a record carries when no plausible date is
// found anywhere in the text. The two pipelines historically disagreed, so
// the behavior is an explicit option instead of a guess.
type MissingDatePolicy int

const (
	// MissingDateAbsent leaves the date zero; absent is distinct from any
	// real date and callers can test ReceiptRecord.Date.IsZero().
	MissingDateAbsent MissingDatePolicy = iota

	// MissingDateNow substitutes the current wall-clock date.
	MissingDateNow
)

// ReceiptRecord is the structured result of one extraction call. Every
// field has a defined default, so the schema is total: consumers never see
// a partial or error record for expected absence cases.
type ReceiptRecord struct {
	Filename string              `json:"filename" csv:"filename"`
	Vendor   string              `json:"vendor" csv:"vendor"`
	Date     time.Time           `json:"date" csv:"date"`
	Amount   decimal.NullDecimal `json:"amount" csv:"amount"`
	Currency string              `json:"currency" csv:"currency"`
	Category string              `json:"category" csv:"category"`
}

// Inputs are the external data snapshots for a single extraction call.
// Both are read-only for the duration of the call; if the vendor list comes
// from a live store the caller must hand over a stable copy.
type Inputs struct {
	// Rules is the externally supplied category keyword rule set. nil means
	// the rule source was unavailable; classification degrades silently.
	Rules *RuleSet

	// KnownVendors are previously seen vendor names ordered by descending
	// occurrence frequency. Never mutated here.
	KnownVendors []string
}

// Extractor turns raw receipt text into a ReceiptRecord. It is a pure
// function of (text, Inputs, clock): no I/O, no internal state mutation, and
// safe for concurrent use across independent documents.
type Extractor struct {
	strategy        Strategy
	missingDate     MissingDatePolicy
	missingDateSet  bool
	defaultCurrency string
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategy selects the extraction pipeline.
func WithStrategy(s Strategy) Option {
	return func(e *Extractor) { e.strategy = s }
}

// WithMissingDatePolicy overrides the strategy's default missing-date
// behavior (Dashboard: absent, API: now).
func WithMissingDatePolicy(p MissingDatePolicy) Option {
	return func(e *Extractor) {
		e.missingDate = p
		e.missingDateSet = true
	}
}

// WithDefaultCurrency sets the symbol assumed when detection finds nothing.
// Only the API strategy consults it; the dashboard strategy derives currency
// solely from the winning amount token.
func WithDefaultCurrency(symbol string) Option {
	return func(e *Extractor) { e.defaultCurrency = symbol }
}

// WithClock fixes the wall-clock source. Tests use this to pin the date
// plausibility window and the MissingDateNow fallback.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithLogger installs a structured logger for per-field extraction
// diagnostics. Without it the extractor is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// New creates an Extractor. Defaults: dashboard strategy, strategy-lineage
// missing-date policy, "₹" default currency, real clock, no logging.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategy:        StrategyDashboard,
		defaultCurrency: DefaultCurrencySymbol,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.missingDateSet {
		if e.strategy == StrategyAPI {
			e.missingDate = MissingDateNow
		} else {
			e.missingDate = MissingDateAbsent
		}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Strategy reports which extraction flow this extractor runs.
func (e *Extractor) Strategy() Strategy {
	return e.strategy
}

// Parse extracts all five fields from raw text. filename is an opaque
// passthrough identifier. Absence cases never error: the record comes back
// with documented defaults instead.
func (e *Extractor) Parse(filename, text string, in Inputs) ReceiptRecord {
	normalized := Normalize(text)
	lines := Lines(normalized)

	var record ReceiptRecord
	switch e.strategy {
	case StrategyAPI:
		record = e.parseAPI(normalized, lines, in)
	default:
		record = e.parseDashboard(normalized, lines, in)
	}
	record.Filename = filename

	if record.Date.IsZero() && e.missingDate == MissingDateNow {
		now := e.now()
		record.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	e.logger.Debug("receipt parsed",
		slog.String("filename", filename),
		slog.String("strategy", string(e.strategy)),
		slog.String("vendor", record.Vendor),
		slog.Bool("amount_found", record.Amount.Valid),
		slog.Bool("date_found", !record.Date.IsZero()),
		slog.String("currency", record.Currency),
		slog.String("category", record.Category),
	)
	return record
}

// amountTokenSplit separates a combined "symbol+number" token back into its
// currency and numeric parts via a leading-symbol match.
var amountTokenSplit = regexp.MustCompile(`^([₹$€£])?(\d+(?:\.\d{1,2})?)`)

// parseDashboard runs the scored, line-oriented pipeline.
func (e *Extractor) parseDashboard(text string, lines []string, in Inputs) ReceiptRecord {
	record := ReceiptRecord{Vendor: UnknownVendor, Category: CategoryOther}

	if vendor, ok := matchKnownVendor(text, in.KnownVendors); ok {
		record.Vendor = vendor
	} else if vendor, ok := matchKnownVendorFuzzy(text, in.KnownVendors); ok {
		record.Vendor = vendor
	} else if header, ok := headerVendorLine(lines, 10); ok {
		record.Vendor = header
	}

	// The winning candidate travels as one "symbol+number" token, exactly as
	// the selection produced it, then splits into separate fields. A token
	// with no parseable leading number leaves the amount absent.
	if best := selectAmount(lines); best != nil {
		token := best.Symbol + best.Value.String()
		if m := amountTokenSplit.FindStringSubmatch(token); m != nil {
			if value, err := decimal.NewFromString(m[2]); err == nil {
				record.Currency = m[1]
				record.Amount = decimal.NullDecimal{Decimal: value, Valid: true}
			}
		}
	}

	record.Date = extractDate(text, lines, e.now())
	record.Category = classifyCategory(text, record.Vendor, in.Rules)
	return record
}

// parseAPI runs the labeled-pattern pipeline. Its lineage never consulted
// stored vendors or keyword rules, so the supplied Inputs are ignored:
// vendor comes from the loose header heuristic alone and category from the
// built-in vendor table alone.
func (e *Extractor) parseAPI(text string, lines []string, _ Inputs) ReceiptRecord {
	record := ReceiptRecord{Vendor: UnknownVendorLabel, Category: CategoryOther}

	if header, ok := headerVendorLineLoose(lines, 6); ok {
		record.Vendor = header
	}

	if value, ok := extractAmountLabeled(text); ok {
		record.Amount = decimal.NullDecimal{Decimal: value, Valid: true}
	}

	record.Currency = DetectCurrency(text, e.defaultCurrency)
	record.Date = extractDateFixed(text)
	record.Category = vendorCategory(record.Vendor)
	return record
}
