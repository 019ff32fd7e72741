package exchange

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/exchange/slippage"
)

var (
	// ErrSpreadNegative is returned when the configured spread is below zero
	ErrSpreadNegative = errors.New("spread percentage cannot be negative")
	// ErrBaseSlippageNegative is returned when the deterministic slippage
	// component is below zero
	ErrBaseSlippageNegative = errors.New("base slippage percentage cannot be negative")
	// ErrImpactNegative is returned when the impact factor is below zero
	ErrImpactNegative = errors.New("impact factor cannot be negative")
)

// Config holds the cost model for a run. All percentages are expressed as
// fractions, so a SpreadPct of 0.001 is ten basis points. Zero values
// disable their component
type Config struct {
	SpreadPct            decimal.Decimal
	BaseSlippagePct      decimal.Decimal
	SlippageVariationPct decimal.Decimal
	ImpactFactor         decimal.Decimal
	Seed                 int64
}

// Simulator executes approved orders against the order's own reference
// price. There is no order book and no partial fills; every order fills
// completely at the reference price adjusted for spread, slippage and
// impact
type Simulator struct {
	cfg   Config
	model *slippage.Model
}
