package risk

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/portfolio"
)

var (
	// ErrLedgerUnset is returned when creating a gate without the ledger it
	// reads state from
	ErrLedgerUnset = errors.New("ledger unset")
	// ErrFixedQuantityInvalid is returned when the configured order size is
	// not positive
	ErrFixedQuantityInvalid = errors.New("fixed quantity must be greater than zero")
	// ErrMaxDrawdownInvalid is returned when the drawdown threshold sits
	// outside the unit interval
	ErrMaxDrawdownInvalid = errors.New("max drawdown must be between 0 and 1")
	// ErrThresholdNegative is returned when any optional limit is negative
	ErrThresholdNegative = errors.New("risk thresholds cannot be negative")
)

// Check identifies one of the gate's ordered evaluations. Rejections are
// aggregated by check, so the names are part of the reporting surface
type Check string

const (
	// CheckDrawdown caps the running-peak-relative equity decline
	CheckDrawdown Check = "drawdown"
	// CheckPositionSize caps a single order's value against equity and an
	// optional absolute ceiling
	CheckPositionSize Check = "position-size"
	// CheckTotalExposure caps the aggregate market value of open positions
	CheckTotalExposure Check = "total-exposure"
	// CheckCash requires buys to be fully funded
	CheckCash Check = "cash"
	// CheckPositionCount caps the number of simultaneously open symbols
	CheckPositionCount Check = "position-count"
)

// Config holds the gate's immutable per-run thresholds. MaxDrawdown is
// optional: unset disables the check, while a set zero tolerates no
// drawdown at all. The remaining limits treat zero as disabled, since a
// zero cap would reject every order
type Config struct {
	FixedQuantity       decimal.Decimal
	MaxDrawdown         decimal.NullDecimal
	MaxPositionPct      decimal.Decimal
	MaxOrderValue       decimal.Decimal
	MaxTotalExposurePct decimal.Decimal
	MaxPositionCount    int
}

// Rejection records a refused signal together with the check that failed
// and a human-readable reason, in the order rejections occurred
type Rejection struct {
	Signal *signal.Signal
	Check  Check
	Reason string
}

// Summary aggregates the rejection log for reporting
type Summary struct {
	Total   int
	ByCheck map[Check]int
}

// Gate approves or rejects signals by reading ledger state against its
// configured thresholds. One instance exists per run; peak equity only
// ever rises
type Gate struct {
	cfg        Config
	ledger     *portfolio.Ledger
	peakEquity decimal.Decimal
	rejections []Rejection
}
