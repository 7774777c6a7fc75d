package extraction

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Sentinel vendor values. The two pipelines historically used different
// sentinels; both are preserved per strategy.
const (
	UnknownVendor      = "Unknown"
	UnknownVendorLabel = "Unknown Vendor"
)

// vendorSkipPrefixes disqualify header-heuristic lines that are clearly
// labels rather than a printed business name.
var vendorSkipPrefixes = []string{"tax", "gst", "invoice", "bill", "date", "receipt"}

// fuzzyVendorMaxDistance bounds the supplemental fuzzy pass: a known vendor
// matches a token when the edit distance is at most 1, enough to absorb a
// single OCR misread ("Swigy" -> "Swiggy") without inventing matches.
const fuzzyVendorMaxDistance = 1

// matchKnownVendor runs Step 1: case-insensitive containment of each known
// vendor against the full text, in list order. The list arrives pre-ordered
// by descending historical frequency, so frequent vendors self-identify
// first and consistently across repeated receipts.
func matchKnownVendor(text string, known []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, vendor := range known {
		if vendor == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(vendor)) {
			return vendor, true
		}
	}
	return "", false
}

// matchKnownVendorFuzzy is the OCR-tolerant pass after exact containment
// fails. It compares known vendors against individual tokens of the text so
// a single misread character still resolves to the stored vendor.
func matchKnownVendorFuzzy(text string, known []string) (string, bool) {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, vendor := range known {
		lv := strings.ToLower(vendor)
		if len(lv) < 4 {
			// Too short for an edit-distance match to mean anything.
			continue
		}
		for _, tok := range tokens {
			if fuzzy.LevenshteinDistance(lv, tok) <= fuzzyVendorMaxDistance {
				return vendor, true
			}
		}
	}
	return "", false
}

// headerVendorLine applies the positional/typographic fallback over the
// first maxLines lines: skip lines that are too short, too long, or start
// with a label prefix; prefer the first remaining line carrying at least one
// letter and a word starting with an uppercase letter, i.e. something shaped
// like a printed business name.
func headerVendorLine(lines []string, maxLines int) (string, bool) {
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for _, line := range lines {
		clean := strings.TrimSpace(line)
		if len(clean) < 3 || len(clean) > 60 {
			continue
		}
		lower := strings.ToLower(clean)
		skip := false
		for _, prefix := range vendorSkipPrefixes {
			if strings.HasPrefix(lower, prefix) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if !strings.ContainsFunc(clean, unicode.IsLetter) {
			continue
		}
		if hasCapitalizedWord(clean) {
			return clean, true
		}
	}
	return "", false
}

// headerVendorLineLoose is the API strategy's variant: only the first
// maxLines lines, any letter qualifies, and only amount-label lines are
// skipped. Looser on shape, tighter on window.
func headerVendorLineLoose(lines []string, maxLines int) (string, bool) {
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for _, line := range lines {
		clean := strings.TrimSpace(line)
		lower := strings.ToLower(clean)
		if strings.Contains(lower, "total") || strings.Contains(lower, "amount") {
			continue
		}
		if strings.ContainsFunc(clean, unicode.IsLetter) {
			return clean, true
		}
	}
	return "", false
}

func hasCapitalizedWord(line string) bool {
	for _, word := range strings.Fields(line) {
		r := []rune(word)[0]
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
