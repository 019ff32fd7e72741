package signal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// New returns a validated signal. The timestamp must be the timestamp of
// the tick that caused it
func New(timestamp int64, symbol string, direction common.Side, referencePrice decimal.Decimal) (*Signal, error) {
	s := &Signal{
		Base:           &event.Base{Timestamp: timestamp, Symbol: symbol},
		Direction:      direction,
		ReferencePrice: referencePrice,
	}
	if err := s.Base.Validate(); err != nil {
		return nil, err
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDirection, direction)
	}
	if referencePrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrPriceNotPositive, symbol, referencePrice)
	}
	return s, nil
}

// GetKind returns the event kind
func (s *Signal) GetKind() common.Kind {
	return common.KindSignal
}

// SetDirection sets the direction
func (s *Signal) SetDirection(side common.Side) {
	s.Direction = side
}

// GetDirection returns the direction
func (s *Signal) GetDirection() common.Side {
	return s.Direction
}

// GetReferencePrice returns the tick price the signal was derived from
func (s *Signal) GetReferencePrice() decimal.Decimal {
	return s.ReferencePrice
}
