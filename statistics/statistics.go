package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/fill"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/portfolio"
	"github.com/ticklab/backsim/risk"
)

var oneHundred = decimal.NewFromInt(100)

// Reset clears the calculated report so the statistic can serve another run
func (s *Statistic) Reset() {
	s.report = nil
}

// CalculateResults reads the finished run out of the ledger and produces
// the report. The ledger is not modified
func (s *Statistic) CalculateResults(l *portfolio.Ledger, rejections risk.Summary) (*Report, error) {
	if l == nil {
		return nil, fmt.Errorf("calculating results: %w", common.ErrNilArguments)
	}
	curve := l.EquityCurve()
	if len(curve) == 0 {
		return nil, ErrNoEquityCurve
	}
	log.Info(log.Statistics, "calculating results")

	trades := l.Trades()
	r := &Report{
		StrategyName: s.StrategyName,
		Nickname:     s.Nickname,
		InitialCash:  l.InitialCash(),
		FinalCash:    l.Cash(),
		FinalEquity:  curve[len(curve)-1].Equity,
		RealizedPnL:  l.RealizedPnL(),
		MaxDrawdown:  CalculateMaxDrawdown(curve),
		SharpeRatio:  calculateSharpeRatio(curve, s.RiskFreeRate),
		TotalFills:   len(trades),
		RoundTrips:   pairRoundTrips(trades),
		Rejections:   rejections,
	}
	r.TotalReturnPct = r.FinalEquity.Sub(r.InitialCash).Div(r.InitialCash).Mul(oneHundred)
	for _, pos := range l.Positions() {
		price, ok := l.LatestPrice(pos.Symbol)
		if !ok {
			continue
		}
		r.UnrealizedPnL = r.UnrealizedPnL.Add(pos.Quantity.Mul(price.Sub(pos.AverageCost)))
	}
	for _, f := range trades {
		if f.Direction == common.Buy {
			r.BuyFills++
		} else {
			r.SellFills++
		}
	}
	if n := len(r.RoundTrips); n > 0 {
		wins := 0
		total := decimal.Zero
		for _, rt := range r.RoundTrips {
			if rt.PnL.IsPositive() {
				wins++
			}
			total = total.Add(rt.PnL)
		}
		count := decimal.NewFromInt(int64(n))
		r.WinRate = decimal.NewFromInt(int64(wins)).Div(count)
		r.AverageTradePnL = total.Div(count)
	}

	s.report = r
	return r, nil
}

// Results returns the most recently calculated report, or nil when
// CalculateResults has not run
func (s *Statistic) Results() *Report {
	return s.report
}

// CalculateMaxDrawdown walks the equity curve and returns the largest
// decline from a running peak. When the curve never declines, the swing
// holds the peak on both ends with a zero percent
func CalculateMaxDrawdown(curve []portfolio.EquityPoint) Swing {
	if len(curve) == 0 {
		return Swing{}
	}
	peak := ValueAtTime{Timestamp: curve[0].Timestamp, Value: curve[0].Equity}
	var max Swing
	for _, point := range curve[1:] {
		if point.Equity.GreaterThan(peak.Value) {
			peak = ValueAtTime{Timestamp: point.Timestamp, Value: point.Equity}
			continue
		}
		// a non-positive peak cannot anchor a percentage decline
		if !peak.Value.IsPositive() {
			continue
		}
		drop := peak.Value.Sub(point.Equity).Div(peak.Value).Mul(oneHundred)
		if drop.GreaterThan(max.DrawdownPercent) {
			max = Swing{
				Highest:         peak,
				Lowest:          ValueAtTime{Timestamp: point.Timestamp, Value: point.Equity},
				DrawdownPercent: drop,
			}
		}
	}
	if max.DrawdownPercent.IsZero() {
		return Swing{Highest: peak, Lowest: peak}
	}
	return max
}

// calculateSharpeRatio computes excess per-tick returns over the
// risk-free rate per period, divided by their population standard
// deviation. Logical timestamps carry no calendar meaning, so the ratio
// is not annualized
func calculateSharpeRatio(curve []portfolio.EquityPoint, riskFreeRate decimal.Decimal) decimal.Decimal {
	excess := make([]decimal.Decimal, 0, len(curve))
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev.IsZero() {
			continue
		}
		ret := curve[i].Equity.Div(prev).Sub(decimal.NewFromInt(1))
		excess = append(excess, ret.Sub(riskFreeRate))
	}
	if len(excess) == 0 {
		return decimal.Zero
	}
	count := decimal.NewFromInt(int64(len(excess)))
	mean := decimal.Zero
	for _, e := range excess {
		mean = mean.Add(e)
	}
	mean = mean.Div(count)
	variance := decimal.Zero
	for _, e := range excess {
		diff := e.Sub(mean)
		variance = variance.Add(diff.Mul(diff))
	}
	variance = variance.Div(count)
	stddev := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
	if stddev.IsZero() {
		return decimal.Zero
	}
	return mean.Div(stddev)
}

// pairRoundTrips replays position accounting over the fill log. Every
// reducing fill realizes one observation against the volume weighted
// entry cost of the exposure it closes, which handles partial closes,
// flips and shorts with the same arithmetic the ledger uses
func pairRoundTrips(trades []*fill.Fill) []RoundTrip {
	type lot struct {
		quantity decimal.Decimal
		avgCost  decimal.Decimal
	}
	open := make(map[string]*lot)
	var trips []RoundTrip
	for _, f := range trades {
		signedQty := f.SignedQuantity()
		held, ok := open[f.Symbol]
		switch {
		case !ok:
			open[f.Symbol] = &lot{quantity: signedQty, avgCost: f.FillPrice}
		case held.quantity.Sign() == signedQty.Sign():
			newQty := held.quantity.Add(signedQty)
			held.avgCost = held.quantity.Mul(held.avgCost).
				Add(signedQty.Mul(f.FillPrice)).
				Div(newQty)
			held.quantity = newQty
		default:
			closingQty := decimal.Min(held.quantity.Abs(), signedQty.Abs())
			direction := common.Buy
			if held.quantity.IsNegative() {
				direction = common.Sell
			}
			trips = append(trips, RoundTrip{
				Symbol:     f.Symbol,
				Direction:  direction,
				Quantity:   closingQty,
				EntryPrice: held.avgCost,
				ExitPrice:  f.FillPrice,
				PnL: closingQty.Mul(f.FillPrice.Sub(held.avgCost)).
					Mul(decimal.NewFromInt(int64(held.quantity.Sign()))),
				ExitTimestamp: f.GetTimestamp(),
			})
			newQty := held.quantity.Add(signedQty)
			switch {
			case newQty.IsZero():
				delete(open, f.Symbol)
			case newQty.Sign() != held.quantity.Sign():
				held.quantity = newQty
				held.avgCost = f.FillPrice
			default:
				held.quantity = newQty
			}
		}
	}
	return trips
}

// PrintResults outputs the calculated report through the statistics
// sublogger
func (s *Statistic) PrintResults() {
	r := s.report
	if r == nil {
		log.Warn(log.Statistics, "no results to print")
		return
	}
	log.Info(log.Statistics, "------------------Strategy-----------------------------")
	log.Infof(log.Statistics, "Strategy name: %v", r.StrategyName)
	if r.Nickname != "" {
		log.Infof(log.Statistics, "Nickname: %v", r.Nickname)
	}
	log.Info(log.Statistics, "------------------Results------------------------------")
	log.Infof(log.Statistics, "Initial cash: %v", r.InitialCash)
	log.Infof(log.Statistics, "Final cash: %v", r.FinalCash)
	log.Infof(log.Statistics, "Final equity: %v", r.FinalEquity)
	log.Infof(log.Statistics, "Total return: %v%%", r.TotalReturnPct.Round(2))
	log.Infof(log.Statistics, "Realized PnL: %v", r.RealizedPnL)
	log.Infof(log.Statistics, "Unrealized PnL: %v", r.UnrealizedPnL)
	log.Info(log.Statistics, "------------------Max Drawdown--------------------------")
	log.Infof(log.Statistics, "Highest equity: %v at tick %v", r.MaxDrawdown.Highest.Value, r.MaxDrawdown.Highest.Timestamp)
	log.Infof(log.Statistics, "Lowest equity: %v at tick %v", r.MaxDrawdown.Lowest.Value, r.MaxDrawdown.Lowest.Timestamp)
	log.Infof(log.Statistics, "Calculated drawdown: %v%%", r.MaxDrawdown.DrawdownPercent.Round(2))
	log.Info(log.Statistics, "------------------Trades--------------------------------")
	log.Infof(log.Statistics, "Total fills: %v (%v buys, %v sells)", r.TotalFills, r.BuyFills, r.SellFills)
	log.Infof(log.Statistics, "Round trips: %v", len(r.RoundTrips))
	log.Infof(log.Statistics, "Win rate: %v", r.WinRate.Round(4))
	log.Infof(log.Statistics, "Average PnL per round trip: %v", r.AverageTradePnL.Round(4))
	log.Infof(log.Statistics, "Sharpe ratio: %v", r.SharpeRatio.Round(4))
	log.Info(log.Statistics, "------------------Rejections----------------------------")
	log.Infof(log.Statistics, "Total rejections: %v", r.Rejections.Total)
	checks := make([]risk.Check, 0, len(r.Rejections.ByCheck))
	for check := range r.Rejections.ByCheck {
		checks = append(checks, check)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i] < checks[j] })
	for _, check := range checks {
		log.Infof(log.Statistics, "Rejected by %v check: %v", check, r.Rejections.ByCheck[check])
	}
}
