package slippage

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
)

// ErrVariationNegative is returned when the variation band is below zero
var ErrVariationNegative = errors.New("slippage variation cannot be negative")

// Model draws the random component of slippage from its own seeded source,
// so a run replays identically for a given seed regardless of what else in
// the process consumes randomness
type Model struct {
	variationPct decimal.Decimal
	seed         int64
	rng          *rand.Rand
}

// NewModel returns a model producing zero-mean draws within
// [-variationPct, +variationPct]
func NewModel(variationPct decimal.Decimal, seed int64) (*Model, error) {
	if variationPct.IsNegative() {
		return nil, ErrVariationNegative
	}
	return &Model{
		variationPct: variationPct,
		seed:         seed,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// Sample returns the next draw. A zero variation band returns zero without
// consuming the source, so disabling the random component keeps the rest
// of a seeded run unchanged
func (m *Model) Sample() decimal.Decimal {
	if m.variationPct.IsZero() {
		return decimal.Zero
	}
	unit := decimal.NewFromFloat(m.rng.Float64()*2 - 1)
	return m.variationPct.Mul(unit)
}

// Reseed restores the source to its initial state so the next run replays
// the same sequence of draws
func (m *Model) Reseed() {
	m.rng = rand.New(rand.NewSource(m.seed))
}
