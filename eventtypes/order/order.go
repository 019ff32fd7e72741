package order

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// New returns a validated order with a freshly assigned ID. The timestamp
// must be the timestamp of the signal that caused it
func New(timestamp int64, symbol string, direction common.Side, quantity, referencePrice decimal.Decimal) (*Order, error) {
	o := &Order{
		Base:           &event.Base{Timestamp: timestamp, Symbol: symbol},
		Direction:      direction,
		Quantity:       quantity,
		ReferencePrice: referencePrice,
	}
	if err := o.Base.Validate(); err != nil {
		return nil, err
	}
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDirection, direction)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrQuantityNotPositive, symbol, quantity)
	}
	if referencePrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v %v", common.ErrPriceNotPositive, symbol, referencePrice)
	}
	u, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	o.ID = u.String()
	return o, nil
}

// GetKind returns the event kind
func (o *Order) GetKind() common.Kind {
	return common.KindOrder
}

// GetID returns the order id
func (o *Order) GetID() string {
	return o.ID
}

// SetDirection sets the direction
func (o *Order) SetDirection(side common.Side) {
	o.Direction = side
}

// GetDirection returns the direction
func (o *Order) GetDirection() common.Side {
	return o.Direction
}

// GetQuantity returns the quantity to transact
func (o *Order) GetQuantity() decimal.Decimal {
	return o.Quantity
}

// GetReferencePrice returns the signal price the order was sized against
func (o *Order) GetReferencePrice() decimal.Decimal {
	return o.ReferencePrice
}
