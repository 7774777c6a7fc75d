package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// datePatterns are the five structural shapes a receipt date can take,
// in priority order: DD/MM/YYYY-style, YYYY/MM/DD-style, "Month DD, YYYY",
// "DD Month YYYY" and "DD-Mon-YYYY". Matching is structural only; the
// fuzzy parser below decides whether the match is an actual date.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	regexp.MustCompile(`\b\w{3,9}\s\d{1,2},\s\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}\s\w{3,9},?\s\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`),
}

// dateContextKeywords marks lines likely to carry the transaction date.
var dateContextKeywords = []string{"date", "invoice", "billed"}

// minReceiptYear is the lower bound of the plausibility window. OCR digit
// corruption routinely produces years like 1899 or 2995; anything outside
// [minReceiptYear, now.Year()+1] is rejected even when syntactically valid.
const minReceiptYear = 2000

// parsePlausibleDate runs the fuzzy parser over a structural match and
// applies the year window. Day-first resolution: receipts in scope write
// 01-04-2024 for the 1st of April.
func parsePlausibleDate(s string, now time.Time) (time.Time, bool) {
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	if t.Year() < minReceiptYear || t.Year() > now.Year()+1 {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// extractDate finds the transaction date in two phases: context-bearing
// lines first, then the whole text. Returns the zero time when no plausible
// date exists; the caller applies its missing-date policy.
func extractDate(text string, lines []string, now time.Time) time.Time {
	// Phase 1: lines that talk about dates.
	for _, line := range lines {
		lower := strings.ToLower(line)
		inContext := false
		for _, kw := range dateContextKeywords {
			if strings.Contains(lower, kw) {
				inContext = true
				break
			}
		}
		if !inContext {
			continue
		}
		for _, pat := range datePatterns {
			m := pat.FindString(line)
			if m == "" {
				continue
			}
			if t, ok := parsePlausibleDate(m, now); ok {
				return t
			}
		}
	}

	// Phase 2: same patterns, whole text, no keyword restriction.
	for _, pat := range datePatterns {
		m := pat.FindString(text)
		if m == "" {
			continue
		}
		if t, ok := parsePlausibleDate(m, now); ok {
			return t
		}
	}

	return time.Time{}
}

// API strategy lineage: three looser structural patterns and a fixed format
// list, no context phase and no year window.
var apiDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})\b`),
	regexp.MustCompile(`\b(\d{1,2} \w{3,9} \d{2,4})\b`),
}

var apiDateFormats = []string{
	"02-01-2006", "02/01/2006", "02.01.2006",
	"2006-01-02", "2006/01/02", "2006.01.02",
	"2 January 2006", "2 Jan 2006",
}

// extractDateFixed parses the first structural match against the fixed
// format list. Matches that fit no format are discarded, not errors.
func extractDateFixed(text string) time.Time {
	for _, pat := range apiDatePatterns {
		m := pat.FindString(text)
		if m == "" {
			continue
		}
		for _, layout := range apiDateFormats {
			if t, err := time.Parse(layout, m); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
		}
	}
	return time.Time{}
}
