package oneshot

import (
	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/strategies/base"
)

const (
	// Name is the strategy name
	Name        = "oneshot"
	description = `Buys on the first tick it accepts, sells on the next and then stays flat forever. Useful for exercising the whole event pipeline end to end`
)

type state uint8

const (
	flat state = iota
	long
	done
)

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	state state
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick walks the FLAT, LONG, DONE state machine one step per accepted
// tick
func (s *Strategy) OnTick(t *tick.Tick) ([]common.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if !s.Accepts(t) {
		return nil, nil
	}
	switch s.state {
	case flat:
		s.state = long
		log.Debugf(log.Strategy, "%v buying %v at %v on first tick", Name, t.GetSymbol(), t.GetPrice())
		return s.Signal(t, common.Buy, "first accepted tick opens the position")
	case long:
		s.state = done
		log.Debugf(log.Strategy, "%v selling %v at %v on second tick", Name, t.GetSymbol(), t.GetPrice())
		return s.Signal(t, common.Sell, "second accepted tick closes the position")
	default:
		return nil, nil
	}
}
