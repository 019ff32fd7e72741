package portfolio

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/fill"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/log"
)

// Setup creates a ledger holding the run's opening balance
func Setup(initialCash decimal.Decimal) (*Ledger, error) {
	if initialCash.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v", ErrInitialCashInvalid, initialCash)
	}
	return &Ledger{
		initialCash:  initialCash,
		cash:         initialCash,
		positions:    make(map[string]*Position),
		latestPrices: make(map[string]decimal.Decimal),
	}, nil
}

// Reset restores the ledger to its opening state
func (l *Ledger) Reset() {
	l.cash = l.initialCash
	l.positions = make(map[string]*Position)
	l.realizedPnL = decimal.Zero
	l.latestPrices = make(map[string]decimal.Decimal)
	l.equityCurve = nil
	l.trades = nil
}

// OnTick stores the observed price as the symbol's latest and records the
// resulting equity at the tick's timestamp. It never generates events
func (l *Ledger) OnTick(t *tick.Tick) ([]common.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	l.latestPrices[t.Symbol] = t.Price
	l.recordEquity(t.GetTimestamp())
	return nil, nil
}

// OnFill applies the only event kind allowed to change cash and
// positions. The cash invariant is checked before any state moves, so a
// failed fill leaves the ledger untouched for the abort snapshot
func (l *Ledger) OnFill(f *fill.Fill) ([]common.Event, error) {
	if f == nil {
		return nil, common.ErrNilEvent
	}
	signedQty := f.SignedQuantity()
	cashDelta := signedQty.Mul(f.FillPrice).Neg()
	if l.cash.Add(cashDelta).IsNegative() {
		return nil, fmt.Errorf("%w: %v %v %v at %v needs %v with %v available",
			ErrInsufficientCash, f.Direction, f.Quantity, f.Symbol, f.FillPrice, cashDelta.Neg(), l.cash)
	}

	pos, ok := l.positions[f.Symbol]
	switch {
	case !ok:
		l.positions[f.Symbol] = &Position{
			Symbol:      f.Symbol,
			Quantity:    signedQty,
			AverageCost: f.FillPrice,
		}
	case pos.Quantity.Sign() == signedQty.Sign():
		// extending exposure reweights the basis across the whole lot
		newQty := pos.Quantity.Add(signedQty)
		pos.AverageCost = pos.Quantity.Mul(pos.AverageCost).
			Add(signedQty.Mul(f.FillPrice)).
			Div(newQty)
		pos.Quantity = newQty
	default:
		// reducing, closing or flipping realizes PnL on the overlap
		closingQty := decimal.Min(pos.Quantity.Abs(), signedQty.Abs())
		direction := decimal.NewFromInt(int64(pos.Quantity.Sign()))
		l.realizedPnL = l.realizedPnL.Add(
			closingQty.Mul(f.FillPrice.Sub(pos.AverageCost)).Mul(direction))
		newQty := pos.Quantity.Add(signedQty)
		switch {
		case newQty.IsZero():
			delete(l.positions, f.Symbol)
		case newQty.Sign() != pos.Quantity.Sign():
			// crossed through zero; the residue was opened at the fill price
			pos.Quantity = newQty
			pos.AverageCost = f.FillPrice
		default:
			pos.Quantity = newQty
		}
	}

	l.cash = l.cash.Add(cashDelta)
	l.trades = append(l.trades, f)
	l.latestPrices[f.Symbol] = f.FillPrice
	l.recordEquity(f.GetTimestamp())
	log.Debugf(log.Portfolio, "fill applied: %v %v %v at %v, cash %v, realized PnL %v",
		f.Direction, f.Quantity, f.Symbol, f.FillPrice, l.cash, l.realizedPnL)
	return nil, nil
}

// recordEquity stores equity at the timestamp, overwriting the previous
// entry when the same instant records twice. Events arrive in
// nondecreasing timestamp order, so only the final point can repeat
func (l *Ledger) recordEquity(timestamp int64) {
	equity := l.LatestEquity()
	if n := len(l.equityCurve); n > 0 && l.equityCurve[n-1].Timestamp == timestamp {
		l.equityCurve[n-1].Equity = equity
		return
	}
	l.equityCurve = append(l.equityCurve, EquityPoint{Timestamp: timestamp, Equity: equity})
}

// LatestEquity returns cash plus the market value of every position with
// a known latest price
func (l *Ledger) LatestEquity() decimal.Decimal {
	equity := l.cash
	for symbol, pos := range l.positions {
		price, ok := l.latestPrices[symbol]
		if !ok {
			continue
		}
		equity = equity.Add(pos.Quantity.Mul(price))
	}
	return equity
}

// TotalExposure returns the aggregate absolute market value of open
// positions at their latest prices
func (l *Ledger) TotalExposure() decimal.Decimal {
	exposure := decimal.Zero
	for symbol, pos := range l.positions {
		price, ok := l.latestPrices[symbol]
		if !ok {
			continue
		}
		exposure = exposure.Add(pos.Quantity.Abs().Mul(price))
	}
	return exposure
}

// Cash returns the uncommitted balance
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// InitialCash returns the opening balance the ledger was created with
func (l *Ledger) InitialCash() decimal.Decimal {
	return l.initialCash
}

// RealizedPnL returns profit and loss locked in by reduced or closed
// positions
func (l *Ledger) RealizedPnL() decimal.Decimal {
	return l.realizedPnL
}

// Position returns the open position for the symbol, if any
func (l *Ledger) Position(symbol string) (Position, bool) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns copies of every open position, sorted by symbol for
// deterministic output
func (l *Ledger) Positions() []Position {
	resp := make([]Position, 0, len(l.positions))
	for _, pos := range l.positions {
		resp = append(resp, *pos)
	}
	sort.Slice(resp, func(i, j int) bool {
		return resp[i].Symbol < resp[j].Symbol
	})
	return resp
}

// OpenPositionCount returns the number of symbols with open exposure
func (l *Ledger) OpenPositionCount() int {
	return len(l.positions)
}

// LatestPrice returns the last observed price for the symbol, if any
func (l *Ledger) LatestPrice(symbol string) (decimal.Decimal, bool) {
	price, ok := l.latestPrices[symbol]
	return price, ok
}

// EquityCurve returns a copy of the recorded equity history in timestamp
// order
func (l *Ledger) EquityCurve() []EquityPoint {
	resp := make([]EquityPoint, len(l.equityCurve))
	copy(resp, l.equityCurve)
	return resp
}

// Trades returns the append-only fill log
func (l *Ledger) Trades() []*fill.Fill {
	resp := make([]*fill.Fill, len(l.trades))
	copy(resp, l.trades)
	return resp
}

// Snapshot returns a deep copy of current state for abort context and
// reporting
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		InitialCash: l.initialCash,
		Cash:        l.cash,
		RealizedPnL: l.realizedPnL,
		Equity:      l.LatestEquity(),
		Positions:   l.Positions(),
		TradeCount:  len(l.trades),
	}
}
