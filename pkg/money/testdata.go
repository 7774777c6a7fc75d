package money

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// TestDataGenerator generates realistic monetary test data using gofakeit.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a new test data generator with a random seed.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(0)}
}

// NewTestDataGeneratorWithSeed creates a generator with a specific seed for
// reproducibility.
func NewTestDataGeneratorWithSeed(seed int64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// RandomAmount generates a random Money value within a minor-unit range.
func (g *TestDataGenerator) RandomAmount(currency string, minUnits, maxUnits int64) *Money {
	if minUnits > maxUnits {
		minUnits, maxUnits = maxUnits, minUnits
	}
	units := g.faker.Int64() % (maxUnits - minUnits + 1)
	if units < 0 {
		units = -units
	}
	return New(minUnits+units, currency)
}

// RandomAmountRange generates a random Money value within a major-unit range.
func (g *TestDataGenerator) RandomAmountRange(currency string, min, max float64) *Money {
	amount := g.faker.Float64Range(min, max)
	return NewFromDecimal(decimal.NewFromFloat(amount), currency)
}

// SmallPurchase generates a typical small receipt total (1-50).
func (g *TestDataGenerator) SmallPurchase(currency string) *Money {
	return g.RandomAmountRange(currency, 1, 50)
}

// Bill generates a typical utility bill total (100-5000).
func (g *TestDataGenerator) Bill(currency string) *Money {
	return g.RandomAmountRange(currency, 100, 5000)
}
