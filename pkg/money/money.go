// Package money bridges the currency symbols found on receipts and
// ISO-4217 currency codes, with precise amount handling via go-money and
// shopspring/decimal.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Common currency codes (ISO-4217)
const (
	INR = "INR" // Indian Rupee
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
	GBP = "GBP" // British Pound
)

// symbolCodes maps the currency symbols recognized on receipts to their
// ISO-4217 codes.
var symbolCodes = map[string]string{
	"₹": INR,
	"$": USD,
	"€": EUR,
	"£": GBP,
}

// CodeForSymbol resolves a receipt currency symbol to its ISO-4217 code.
// Unrecognized symbols resolve to INR, the default receipt currency.
func CodeForSymbol(symbol string) string {
	if code, ok := symbolCodes[symbol]; ok {
		return code
	}
	return INR
}

// SymbolForCode returns the display symbol for an ISO-4217 code, or the
// code itself when go-money has no grapheme for it.
func SymbolForCode(code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		return code
	}
	return currency.Grapheme
}

// Money represents a monetary value with currency. It wraps go-money for
// safe arithmetic and shopspring/decimal for precision conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units (cents/paise) and currency code.
func New(amountMinor int64, currencyCode string) *Money {
	return &Money{m: money.New(amountMinor, currencyCode)}
}

// NewFromDecimal creates Money from a decimal amount in major units.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(INR)
	}

	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()

	return New(minor, currencyCode)
}

// NewFromSymbol creates Money from a decimal amount and a receipt currency
// symbol.
func NewFromSymbol(amount decimal.Decimal, symbol string) *Money {
	return NewFromDecimal(amount, CodeForSymbol(symbol))
}

// NewFromString parses an amount string that may carry a currency symbol and
// thousands separators, e.g. "₹1,234.56".
func NewFromString(amount, currencyCode string) (*Money, error) {
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, " ", "")
	for sym := range symbolCodes {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	amount = strings.ReplaceAll(amount, ",", "")

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	return NewFromDecimal(d, currencyCode), nil
}

// Amount returns the amount in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// Add adds two Money values. Returns error if currencies don't match.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}

	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// ToDecimal converts to decimal.Decimal in major units.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	currency := m.m.Currency()
	d := decimal.NewFromInt(m.m.Amount())
	divisor := decimal.New(1, int32(currency.Fraction))
	return d.Div(divisor)
}

// StringFixed returns the amount with exactly the currency's minor-unit
// digits, e.g. "450.00" for INR.
func (m *Money) StringFixed() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.ToDecimal().StringFixed(int32(m.m.Currency().Fraction))
}

// Display returns a locale-formatted string, e.g. "₹1,234.56".
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}

// String returns the amount as a plain decimal string, e.g. "1234.56".
func (m *Money) String() string {
	if m == nil || m.m == nil {
		return "0.00"
	}
	return m.ToDecimal().String()
}
