package base

import (
	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/eventtypes/tick"
)

// SetSymbol restricts the strategy to one symbol
func (s *Strategy) SetSymbol(symbol string) {
	s.symbol = symbol
}

// Symbol returns the configured symbol filter
func (s *Strategy) Symbol() string {
	return s.symbol
}

// Accepts reports whether the strategy trades the tick's symbol
func (s *Strategy) Accepts(t *tick.Tick) bool {
	return s.symbol == "" || s.symbol == t.GetSymbol()
}

// Signal builds a single-element response carrying a signal that inherits
// the tick's timestamp, symbol and price, with the audit trail started
func (s *Strategy) Signal(t *tick.Tick, direction common.Side, format string, v ...interface{}) ([]common.Event, error) {
	sig, err := signal.New(t.GetTimestamp(), t.GetSymbol(), direction, t.GetPrice())
	if err != nil {
		return nil, err
	}
	sig.AppendReasonf(format, v...)
	return []common.Event{sig}, nil
}

// SetCustomSettings rejects any settings; strategies that take settings
// override this
func (s *Strategy) SetCustomSettings(custom map[string]interface{}) error {
	if len(custom) == 0 {
		return nil
	}
	return ErrCustomSettingsUnsupported
}

// SetDefaults is a no-op for strategies with nothing to configure
func (s *Strategy) SetDefaults() {}
