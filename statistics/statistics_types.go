package statistics

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/risk"
)

// ErrNoEquityCurve is returned when results are requested for a run that
// recorded no equity points
var ErrNoEquityCurve = errors.New("no equity points recorded")

// Statistic calculates and holds the post-run report. It only ever reads
// ledger state, so calculating results is safe at any point after a run
type Statistic struct {
	StrategyName string
	Nickname     string
	RiskFreeRate decimal.Decimal
	report       *Report
}

// ValueAtTime pairs an equity value with the logical timestamp it was
// recorded at
type ValueAtTime struct {
	Timestamp int64
	Value     decimal.Decimal
}

// Swing is the largest peak to trough equity decline of a run.
// DrawdownPercent is positive, expressing the drop as a percentage of the
// peak
type Swing struct {
	Highest         ValueAtTime
	Lowest          ValueAtTime
	DrawdownPercent decimal.Decimal
}

// RoundTrip is one realized profit and loss observation: the portion of a
// position closed by a single reducing fill, priced against the volume
// weighted entry cost of the exposure it closed
type RoundTrip struct {
	Symbol        string
	Direction     common.Side
	Quantity      decimal.Decimal
	EntryPrice    decimal.Decimal
	ExitPrice     decimal.Decimal
	PnL           decimal.Decimal
	ExitTimestamp int64
}

// Report is the full set of results for one run
type Report struct {
	StrategyName    string
	Nickname        string
	InitialCash     decimal.Decimal
	FinalCash       decimal.Decimal
	FinalEquity     decimal.Decimal
	TotalReturnPct  decimal.Decimal
	RealizedPnL     decimal.Decimal
	UnrealizedPnL   decimal.Decimal
	MaxDrawdown     Swing
	SharpeRatio     decimal.Decimal
	TotalFills      int
	BuyFills        int
	SellFills       int
	RoundTrips      []RoundTrip
	WinRate         decimal.Decimal
	AverageTradePnL decimal.Decimal
	Rejections      risk.Summary
}
