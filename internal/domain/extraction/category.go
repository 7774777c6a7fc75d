package extraction

import "strings"

// CategoryOther is the terminal category fallback.
const CategoryOther = "Other"

// vendorCategories is the built-in brand-to-category table used when no
// keyword rule matches (or no rule set was supplied at all). Matching is
// case-insensitive substring against the extracted vendor string, in table
// order.
var vendorCategories = []struct {
	Vendor   string
	Category string
}{
	{"Amazon", "Shopping"},
	{"Flipkart", "Shopping"},
	{"Swiggy", "Food"},
	{"Zomato", "Food"},
	{"Reliance", "Grocery"},
	{"BESCOM", "Electricity"},
	{"ACT", "Internet"},
	{"Airtel", "Internet"},
	{"Vodafone", "Internet"},
}

// classifyCategory maps receipt text to a category. Keyword rules are
// consulted first in supplied order; if none match (including when the rule
// source was unavailable and rules is nil), the built-in vendor table is
// tried against the extracted vendor; failing both, CategoryOther.
func classifyCategory(text, vendor string, rules *RuleSet) string {
	if category, ok := rules.match(text); ok {
		return category
	}
	return vendorCategory(vendor)
}

// vendorCategory resolves a category from the vendor string alone.
func vendorCategory(vendor string) string {
	lower := strings.ToLower(vendor)
	for _, vc := range vendorCategories {
		if strings.Contains(lower, strings.ToLower(vc.Vendor)) {
			return vc.Category
		}
	}
	return CategoryOther
}
