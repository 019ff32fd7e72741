package fill

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// New returns a validated fill. The timestamp must be the timestamp of the
// order that caused it
func New(timestamp int64, symbol string, direction common.Side, quantity, fillPrice decimal.Decimal, orderID string) (*Fill, error) {
	f := &Fill{
		Base:      &event.Base{Timestamp: timestamp, Symbol: symbol},
		OrderID:   orderID,
		Direction: direction,
		Quantity:  quantity,
		FillPrice: fillPrice,
	}
	if err := f.Base.Validate(); err != nil {
		return nil, err
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDirection, direction)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrQuantityNotPositive, symbol, quantity)
	}
	if fillPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrPriceNotPositive, symbol, fillPrice)
	}
	return f, nil
}

// GetKind returns the event kind
func (f *Fill) GetKind() common.Kind {
	return common.KindFill
}

// SetDirection sets the direction
func (f *Fill) SetDirection(side common.Side) {
	f.Direction = side
}

// GetDirection returns the direction
func (f *Fill) GetDirection() common.Side {
	return f.Direction
}

// GetQuantity returns the executed quantity
func (f *Fill) GetQuantity() decimal.Decimal {
	return f.Quantity
}

// GetFillPrice returns the price the order executed at after costs
func (f *Fill) GetFillPrice() decimal.Decimal {
	return f.FillPrice
}

// SignedQuantity returns the quantity signed by direction, positive for
// buys and negative for sells
func (f *Fill) SignedQuantity() decimal.Decimal {
	return f.Quantity.Mul(decimal.NewFromInt(f.Direction.Sign()))
}

// TotalCost returns the sum of the spread, slippage and impact components
// paid versus the reference price, per unit
func (f *Fill) TotalCost() decimal.Decimal {
	return f.SpreadCost.Add(f.SlippageCost).Add(f.ImpactCost)
}
