// Package extraction recovers structured receipt fields (vendor, amount,
// currency, date, category) from noisy OCR text. OCR output is layout-free
// and frequently lossy, so every extractor works on layered heuristics and
// scoring rather than fixed positions or single regexes.
package extraction

import (
	"regexp"
	"strings"
)

// currencyAliases maps textual currency spellings to their canonical symbol.
// Rewriting happens before any extractor runs so downstream matching only
// ever deals with the symbol form.
var currencyAliases = []struct {
	alias  string
	symbol string
}{
	{"INR", "₹"},
	{"Rs.", "₹"},
}

// groupedDigits matches a thousands separator between two digits.
var groupedDigits = regexp.MustCompile(`(\d),(\d)`)

// Normalize canonicalizes raw OCR text: currency aliases become symbols and
// digit-group commas are stripped so "1,234.50" parses as 1234.50. Commas
// that are not between digits (e.g. "March 15, 2023") are left alone.
// Empty input yields an empty result; there is no error path.
func Normalize(text string) string {
	for _, a := range currencyAliases {
		text = strings.ReplaceAll(text, a.alias, a.symbol)
	}

	// Repeated replacement handles runs like "1,234,567".
	for groupedDigits.MatchString(text) {
		text = groupedDigits.ReplaceAllString(text, "$1$2")
	}

	return text
}

// Lines splits normalized text into trimmed, non-empty lines in document
// order. All extractors that reason per line share this view.
func Lines(text string) []string {
	raw := strings.Split(strings.TrimSpace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
