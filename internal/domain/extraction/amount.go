package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountToken matches an optional currency symbol followed by a 2-10 digit
// integer part with an optional 1-2 digit decimal part. Single digits are
// deliberately excluded: they are almost always quantities or list indices.
var amountToken = regexp.MustCompile(`(₹|\$|€|£)?\s?(\d{2,10}(?:\.\d{1,2})?)`)

// AmountCandidate is one scored numeric occurrence. Candidates are transient:
// they exist only between per-line generation and max-score selection.
type AmountCandidate struct {
	Line   string
	Value  decimal.Decimal
	Symbol string
	Score  int
}

// scoreRule is one entry of the amount scoring table. Rules sharing a group
// are mutually exclusive: only the first matching rule of a group scores,
// which keeps "total amount" from also collecting the generic label bonus.
type scoreRule struct {
	name    string
	group   string
	pattern *regexp.Regexp
	weight  int
}

// amountScoreRules approximates how a human skims a receipt for the final
// amount: label proximity up, known non-final labels down. Expressed as data
// so each rule is unit-testable and tunable in isolation.
var amountScoreRules = []scoreRule{
	{"total amount label", "label", regexp.MustCompile(`total amount`), 5},
	{"generic amount label", "label", regexp.MustCompile(`total|amount|paid|net|due|fare|bill|charge`), 3},
	{"spelled-out amount", "", regexp.MustCompile(`rupees|only`), 1},
	{"non-final amount", "", regexp.MustCompile(`round off|balance|tax|receipt no`), -3},
}

// attachedSymbolBonus rewards a currency symbol attached to the specific
// match rather than merely present somewhere on the line.
const attachedSymbolBonus = 1

// scoreLine applies the scoring table to a single line. hasSymbol refers to
// the individual match, not the line.
func scoreLine(line string, hasSymbol bool) int {
	lower := strings.ToLower(line)
	score := 0
	matchedGroups := make(map[string]bool, 2)

	for _, rule := range amountScoreRules {
		if rule.group != "" && matchedGroups[rule.group] {
			continue
		}
		if rule.pattern.MatchString(lower) {
			score += rule.weight
			if rule.group != "" {
				matchedGroups[rule.group] = true
			}
		}
	}

	if hasSymbol {
		score += attachedSymbolBonus
	}
	return score
}

// amountCandidates generates every scored candidate across all lines, in
// document order. Substrings that fail decimal parsing are discarded, never
// propagated.
func amountCandidates(lines []string) []AmountCandidate {
	var candidates []AmountCandidate
	for _, line := range lines {
		for _, m := range amountToken.FindAllStringSubmatch(line, -1) {
			symbol, number := m[1], m[2]
			value, err := decimal.NewFromString(number)
			if err != nil {
				continue
			}
			candidates = append(candidates, AmountCandidate{
				Line:   strings.TrimSpace(line),
				Value:  value,
				Symbol: symbol,
				Score:  scoreLine(line, symbol != ""),
			})
		}
	}
	return candidates
}

// selectAmount picks the highest-scoring candidate. Ties resolve to the
// first candidate in document order, so repeated invocations over identical
// text are byte-identical. Returns nil when no line yields a numeric match:
// absence of an amount is distinct from a zero amount.
func selectAmount(lines []string) *AmountCandidate {
	candidates := amountCandidates(lines)
	if len(candidates) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[best].Score {
			best = i
		}
	}
	return &candidates[best]
}

// Labeled-amount patterns for the API strategy lineage: an explicit label,
// then any symbol-prefixed decimal anywhere in the text.
var (
	labeledAmount = regexp.MustCompile(`(?i)(Total Amount|Grand Total|Amount Paid|Total)\s*[:\-]?\s*[₹$€£]?\s*(\d+(?:\.\d{1,2})?)`)
	symbolAmount  = regexp.MustCompile(`[₹$€£]\s*(\d+\.\d{2})`)
	bareAmount    = regexp.MustCompile(`[₹$€£]?\s*(\d+\.\d{2})`)
)

// extractAmountLabeled is the API strategy's amount policy: the first
// labeled amount wins; failing that, the largest symbol-less decimal in the
// whole text. No per-line scoring. Returns false when nothing parses.
func extractAmountLabeled(text string) (decimal.Decimal, bool) {
	for _, re := range []*regexp.Regexp{labeledAmount, symbolAmount} {
		if m := re.FindStringSubmatch(text); m != nil {
			raw := m[len(m)-1]
			if value, err := decimal.NewFromString(raw); err == nil {
				return value, true
			}
		}
	}

	// Largest decimal anywhere. Receipts list item prices below the total,
	// so max is a serviceable last resort.
	var max decimal.Decimal
	found := false
	for _, m := range bareAmount.FindAllStringSubmatch(text, -1) {
		value, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		if !found || value.GreaterThan(max) {
			max = value
			found = true
		}
	}
	return max, found
}
