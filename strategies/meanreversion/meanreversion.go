package meanreversion

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
	Name         = "meanreversion"
	windowKey    = "window"
	thresholdKey = "threshold"
	description  = `Maintains a rolling mean per symbol, buys when the price drops more than an absolute threshold below it and sells once the price recovers to the mean`
)

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	window    int
	threshold decimal.Decimal
	prices    map[string][]float64
	long      map[string]bool
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick tracks the rolling window for the tick's symbol and trades the
// band. Nothing is emitted until the window is full
func (s *Strategy) OnTick(t *tick.Tick) ([]common.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if !s.Accepts(t) {
		return nil, nil
	}
	if s.prices == nil {
		s.prices = make(map[string][]float64)
		s.long = make(map[string]bool)
	}

	symbol := t.GetSymbol()
	price := t.GetPrice()
	window := append(s.prices[symbol], price.InexactFloat64())
	if len(window) > s.window {
		window = window[len(window)-s.window:]
	}
	s.prices[symbol] = window
	if len(window) < s.window {
		return nil, nil
	}

	ma := indicators.MA(window, s.window, indicators.Sma)
	mean := decimal.NewFromFloat(ma[len(ma)-1])
	lowerBand := mean.Sub(s.threshold)

	if !s.long[symbol] && price.LessThan(lowerBand) {
		s.long[symbol] = true
		log.Debugf(log.Strategy, "%v buying %v at %v, mean %v, lower band %v", Name, symbol, price, mean, lowerBand)
		return s.Signal(t, common.Buy, "price %v below lower band %v of mean %v", price, lowerBand, mean)
	}
	if s.long[symbol] && price.GreaterThanOrEqual(mean) {
		s.long[symbol] = false
		log.Debugf(log.Strategy, "%v selling %v at %v, recovered to mean %v", Name, symbol, price, mean)
		return s.Signal(t, common.Sell, "price %v recovered to mean %v", price, mean)
	}
	return nil, nil
}

// SetCustomSettings adjusts the window and threshold from the run config
func (s *Strategy) SetCustomSettings(customSettings map[string]interface{}) error {
	for k, v := range customSettings {
		switch k {
		case windowKey:
			window, ok := v.(float64)
			if !ok || window < 1 {
				return fmt.Errorf("%w: provided window value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.window = int(window)
		case thresholdKey:
			threshold, ok := v.(float64)
			if !ok || threshold < 0 {
				return fmt.Errorf("%w: provided threshold value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.threshold = decimal.NewFromFloat(threshold)
		default:
			return fmt.Errorf("%w: unrecognised custom setting key %v with value %v", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the window and threshold to their default values
func (s *Strategy) SetDefaults() {
	s.window = 5
	s.threshold = decimal.NewFromInt(2)
}
