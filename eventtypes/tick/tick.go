package tick

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// New returns a validated tick. Malformed prices are rejected here so bad
// data can never enter the queue
func New(timestamp int64, symbol string, price decimal.Decimal) (*Tick, error) {
	t := &Tick{
		Base:  &event.Base{Timestamp: timestamp, Symbol: symbol},
		Price: price,
	}
	if err := t.Base.Validate(); err != nil {
		return nil, err
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrPriceNotPositive, symbol, price)
	}
	return t, nil
}

// GetKind returns the event kind
func (t *Tick) GetKind() common.Kind {
	return common.KindTick
}

// GetPrice returns the observed price
func (t *Tick) GetPrice() decimal.Decimal {
	return t.Price
}
