package portfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/eventtypes/fill"
)

var (
	// ErrInsufficientCash is returned when applying a fill would take cash
	// below zero. It is fatal rather than business-recoverable: correct
	// upstream sizing must prevent it, so the run aborts with full context
	// instead of silently clamping the ledger
	ErrInsufficientCash = errors.New("insufficient cash for fill")
	// ErrInitialCashInvalid is returned when creating a ledger without a
	// positive opening balance
	ErrInitialCashInvalid = errors.New("initial cash must be greater than zero")
)

// Position is the ledger's view of exposure in one symbol. Quantity is
// signed, positive for long and negative for short. AverageCost is the
// volume weighted entry price of the open exposure and only moves when a
// fill extends it in the same direction
type Position struct {
	Symbol      string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
}

// EquityPoint pairs a logical timestamp with the equity recorded there
type EquityPoint struct {
	Timestamp int64
	Equity    decimal.Decimal
}

// Ledger is the sole owner of cash, positions, realized PnL and the
// equity history. It is mutated only through OnTick and OnFill; the risk
// gate and post-run reporting read it
type Ledger struct {
	initialCash  decimal.Decimal
	cash         decimal.Decimal
	positions    map[string]*Position
	realizedPnL  decimal.Decimal
	latestPrices map[string]decimal.Decimal
	equityCurve  []EquityPoint
	trades       []*fill.Fill
}

// Snapshot is a deep read-only copy of ledger state, safe to hand to
// error contexts and external reporting without exposing mutable
// references
type Snapshot struct {
	InitialCash decimal.Decimal
	Cash        decimal.Decimal
	RealizedPnL decimal.Decimal
	Equity      decimal.Decimal
	Positions   []Position
	TradeCount  int
}

// String implements the stringer interface for audit output
func (s Snapshot) String() string {
	return fmt.Sprintf("cash %v, equity %v, realized PnL %v, %d open position(s), %d trade(s)",
		s.Cash, s.Equity, s.RealizedPnL, len(s.Positions), s.TradeCount)
}
