package rsi

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/strategies/base"
)

const (
	// Name is the strategy name
	Name         = "rsi"
	rsiPeriodKey = "rsi-period"
	rsiLowKey    = "rsi-low"
	rsiHighKey   = "rsi-high"
	description  = `The relative strength index charts the current and historical strength or weakness of an instrument from its recent closing prices. Buys at or below the low bound, sells at or above the high bound`
)

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	rsiPeriod int
	rsiLow    decimal.Decimal
	rsiHigh   decimal.Decimal
	prices    map[string][]float64
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick appends the price to the symbol's history and signals on the
// configured bounds. No signal is produced until the history exceeds the
// period
func (s *Strategy) OnTick(t *tick.Tick) ([]common.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if !s.Accepts(t) {
		return nil, nil
	}
	if s.prices == nil {
		s.prices = make(map[string][]float64)
	}

	symbol := t.GetSymbol()
	history := append(s.prices[symbol], t.GetPrice().InexactFloat64())
	s.prices[symbol] = history
	if len(history) <= s.rsiPeriod {
		return nil, nil
	}

	rsi := indicators.RSI(history, s.rsiPeriod)
	latest := decimal.NewFromFloat(rsi[len(rsi)-1])
	switch {
	case latest.LessThanOrEqual(s.rsiLow):
		log.Debugf(log.Strategy, "%v buying %v, RSI %v at or below %v", Name, symbol, latest, s.rsiLow)
		return s.Signal(t, common.Buy, "RSI %v at or below %v", latest, s.rsiLow)
	case latest.GreaterThanOrEqual(s.rsiHigh):
		log.Debugf(log.Strategy, "%v selling %v, RSI %v at or above %v", Name, symbol, latest, s.rsiHigh)
		return s.Signal(t, common.Sell, "RSI %v at or above %v", latest, s.rsiHigh)
	default:
		return nil, nil
	}
}

// SetCustomSettings adjusts the RSI bounds and period from the run config
func (s *Strategy) SetCustomSettings(customSettings map[string]interface{}) error {
	for k, v := range customSettings {
		switch k {
		case rsiHighKey:
			rsiHigh, ok := v.(float64)
			if !ok || rsiHigh <= 0 {
				return fmt.Errorf("%w: provided rsi-high value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiHigh = decimal.NewFromFloat(rsiHigh)
		case rsiLowKey:
			rsiLow, ok := v.(float64)
			if !ok || rsiLow <= 0 {
				return fmt.Errorf("%w: provided rsi-low value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiLow = decimal.NewFromFloat(rsiLow)
		case rsiPeriodKey:
			rsiPeriod, ok := v.(float64)
			if !ok || rsiPeriod <= 0 {
				return fmt.Errorf("%w: provided rsi-period value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.rsiPeriod = int(rsiPeriod)
		default:
			return fmt.Errorf("%w: unrecognised custom setting key %v with value %v", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the period and bounds to their default values
func (s *Strategy) SetDefaults() {
	s.rsiHigh = decimal.NewFromInt(70)
	s.rsiLow = decimal.NewFromInt(30)
	s.rsiPeriod = 14
}
