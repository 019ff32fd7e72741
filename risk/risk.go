package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/order"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/portfolio"
)

// Setup creates a gate bound to the ledger it reads equity and exposure
// from
func Setup(cfg Config, ledger *portfolio.Ledger) (*Gate, error) {
	if ledger == nil {
		return nil, ErrLedgerUnset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Gate{cfg: cfg, ledger: ledger}, nil
}

// Validate ensures the thresholds make sense before a run starts
func (c *Config) Validate() error {
	if c.FixedQuantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrFixedQuantityInvalid, c.FixedQuantity)
	}
	if c.MaxDrawdown.Valid &&
		(c.MaxDrawdown.Decimal.IsNegative() || c.MaxDrawdown.Decimal.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("%w: %v", ErrMaxDrawdownInvalid, c.MaxDrawdown.Decimal)
	}
	if c.MaxPositionPct.IsNegative() ||
		c.MaxOrderValue.IsNegative() ||
		c.MaxTotalExposurePct.IsNegative() {
		return ErrThresholdNegative
	}
	if c.MaxPositionCount < 0 {
		return ErrThresholdNegative
	}
	return nil
}

// Reset clears accumulated peak equity and the rejection log
func (g *Gate) Reset() {
	g.peakEquity = decimal.Zero
	g.rejections = nil
}

// OnSignal runs the checks in their fixed order, short-circuiting on the
// first failure. A failure appends to the rejection log and produces no
// order; it is never an error. All checks passing produces exactly one
// order inheriting the signal's timestamp, symbol, direction and
// reference price
func (g *Gate) OnSignal(s *signal.Signal) ([]common.Event, error) {
	if s == nil {
		return nil, common.ErrNilEvent
	}
	equity := g.ledger.LatestEquity()
	if equity.GreaterThan(g.peakEquity) {
		g.peakEquity = equity
	}
	if check, reason, ok := g.evaluate(s, equity); !ok {
		s.AppendReasonf("rejected by %s check: %s", check, reason)
		g.rejections = append(g.rejections, Rejection{Signal: s, Check: check, Reason: reason})
		log.Debugf(log.RiskGate, "rejected %v %v at t=%d: %s check failed: %s",
			s.GetDirection(), s.GetSymbol(), s.GetTimestamp(), check, reason)
		return nil, nil
	}

	o, err := order.New(s.GetTimestamp(), s.GetSymbol(), s.GetDirection(), g.cfg.FixedQuantity, s.GetReferencePrice())
	if err != nil {
		return nil, err
	}
	o.AppendReasonf("risk approved %v %v at reference %v", s.GetDirection(), g.cfg.FixedQuantity, s.GetReferencePrice())
	log.Debugf(log.RiskGate, "approved %v %v %v at t=%d", s.GetDirection(), g.cfg.FixedQuantity, s.GetSymbol(), s.GetTimestamp())
	return []common.Event{o}, nil
}

// evaluate applies the five checks in order. The order never varies, so
// a given ledger state always rejects for the same reason
func (g *Gate) evaluate(s *signal.Signal, equity decimal.Decimal) (Check, string, bool) {
	if g.cfg.MaxDrawdown.Valid && g.peakEquity.IsPositive() {
		drawdown := g.peakEquity.Sub(equity).Div(g.peakEquity)
		if drawdown.GreaterThan(g.cfg.MaxDrawdown.Decimal) {
			return CheckDrawdown, fmt.Sprintf("drawdown %v exceeds limit %v",
				drawdown.Round(4), g.cfg.MaxDrawdown.Decimal), false
		}
	}

	orderValue := g.cfg.FixedQuantity.Mul(s.GetReferencePrice())
	if g.cfg.MaxPositionPct.IsPositive() {
		if !equity.IsPositive() {
			return CheckPositionSize, fmt.Sprintf("equity %v cannot support new orders", equity), false
		}
		if ratio := orderValue.Div(equity); ratio.GreaterThan(g.cfg.MaxPositionPct) {
			return CheckPositionSize, fmt.Sprintf("order value %v is %v of equity %v, limit %v",
				orderValue, ratio.Round(4), equity, g.cfg.MaxPositionPct), false
		}
	}
	if g.cfg.MaxOrderValue.IsPositive() && orderValue.GreaterThan(g.cfg.MaxOrderValue) {
		return CheckPositionSize, fmt.Sprintf("order value %v exceeds absolute cap %v",
			orderValue, g.cfg.MaxOrderValue), false
	}

	if g.cfg.MaxTotalExposurePct.IsPositive() {
		if !equity.IsPositive() {
			return CheckTotalExposure, fmt.Sprintf("equity %v cannot support exposure", equity), false
		}
		projected := g.ledger.TotalExposure()
		if g.increasesExposure(s) {
			projected = projected.Add(orderValue)
		}
		if ratio := projected.Div(equity); ratio.GreaterThan(g.cfg.MaxTotalExposurePct) {
			return CheckTotalExposure, fmt.Sprintf("exposure %v would be %v of equity %v, limit %v",
				projected, ratio.Round(4), equity, g.cfg.MaxTotalExposurePct), false
		}
	}

	// shorts intentionally skip the cash check; exposure and drawdown
	// limits are what bound them
	if s.GetDirection() == common.Buy && g.ledger.Cash().LessThan(orderValue) {
		return CheckCash, fmt.Sprintf("cash %v cannot fund order value %v",
			g.ledger.Cash(), orderValue), false
	}

	if g.cfg.MaxPositionCount > 0 {
		if _, open := g.ledger.Position(s.GetSymbol()); !open &&
			g.ledger.OpenPositionCount() >= g.cfg.MaxPositionCount {
			return CheckPositionCount, fmt.Sprintf("%d positions already open, limit %d",
				g.ledger.OpenPositionCount(), g.cfg.MaxPositionCount), false
		}
	}

	return "", "", true
}

// increasesExposure reports whether filling the signal would add to
// aggregate exposure: opening a new symbol always does, and so does
// extending an existing position in its own direction
func (g *Gate) increasesExposure(s *signal.Signal) bool {
	pos, ok := g.ledger.Position(s.GetSymbol())
	if !ok {
		return true
	}
	return int64(pos.Quantity.Sign()) == s.GetDirection().Sign()
}

// PeakEquity returns the highest equity observed at any signal so far
func (g *Gate) PeakEquity() decimal.Decimal {
	return g.peakEquity
}

// Rejections returns a copy of the rejection log in occurrence order
func (g *Gate) Rejections() []Rejection {
	resp := make([]Rejection, len(g.rejections))
	copy(resp, g.rejections)
	return resp
}

// RejectionSummary aggregates the rejection log by check for reporting
func (g *Gate) RejectionSummary() Summary {
	summary := Summary{
		Total:   len(g.rejections),
		ByCheck: make(map[Check]int),
	}
	for i := range g.rejections {
		summary.ByCheck[g.rejections[i].Check]++
	}
	return summary
}
