package extraction

import "regexp"

// DefaultCurrencySymbol is assumed when a receipt carries no recognizable
// symbol. Receipts in the wild here are predominantly INR.
const DefaultCurrencySymbol = "₹"

// currencySymbol matches any of the supported currency symbols.
var currencySymbol = regexp.MustCompile(`[₹$€£]`)

// DetectCurrency returns the first currency symbol occurring in the text,
// or fallback when none is present. First match wins regardless of context;
// amounts carry their own attached-symbol signal separately.
func DetectCurrency(text, fallback string) string {
	if sym := currencySymbol.FindString(text); sym != "" {
		return sym
	}
	return fallback
}
