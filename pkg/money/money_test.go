package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeForSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{"rupee", "₹", INR},
		{"dollar", "$", USD},
		{"euro", "€", EUR},
		{"pound", "£", GBP},
		{"unknown symbol falls back to INR", "¥", INR},
		{"empty symbol falls back to INR", "", INR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeForSymbol(tt.symbol))
		})
	}
}

func TestSymbolForCode(t *testing.T) {
	assert.Equal(t, "₹", SymbolForCode(INR))
	assert.Equal(t, "$", SymbolForCode(USD))
	assert.Equal(t, "XXX", SymbolForCode("XXX"))
}

func TestNewFromDecimal(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     int64
	}{
		{"rupees to paise", "450.00", INR, 45000},
		{"dollars to cents", "12.34", USD, 1234},
		{"rounds half up", "0.005", USD, 1},
		{"zero", "0", INR, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFromDecimal(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, m.Amount())
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestNewFromSymbol(t *testing.T) {
	m := NewFromSymbol(decimal.RequireFromString("320.50"), "₹")
	assert.Equal(t, INR, m.Currency())
	assert.Equal(t, int64(32050), m.Amount())
}

func TestNewFromString(t *testing.T) {
	t.Run("strips symbol and separators", func(t *testing.T) {
		m, err := NewFromString("₹1,234.56", INR)
		require.NoError(t, err)
		assert.Equal(t, int64(123456), m.Amount())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewFromString("abc", INR)
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("450.00")
	m := NewFromDecimal(d, INR)
	assert.True(t, m.ToDecimal().Equal(d))
}

func TestAdd(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		sum, err := New(100, INR).Add(New(250, INR))
		require.NoError(t, err)
		assert.Equal(t, int64(350), sum.Amount())
	})

	t.Run("mismatched currencies", func(t *testing.T) {
		_, err := New(100, INR).Add(New(100, USD))
		require.Error(t, err)
	})

	t.Run("nil operand passes through", func(t *testing.T) {
		var m *Money
		sum, err := m.Add(New(100, INR))
		require.NoError(t, err)
		assert.Equal(t, int64(100), sum.Amount())
	})
}

func TestString(t *testing.T) {
	assert.Equal(t, "450", New(45000, INR).String())
	assert.Equal(t, "320.5", New(32050, INR).String())
	assert.Equal(t, "0.00", (*Money)(nil).String())
}

func TestStringFixed(t *testing.T) {
	assert.Equal(t, "450.00", New(45000, INR).StringFixed())
	assert.Equal(t, "320.50", New(32050, INR).StringFixed())
	assert.Equal(t, "", (*Money)(nil).StringFixed())
}
