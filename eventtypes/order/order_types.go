package order

import (
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// Order is a risk-approved instruction to transact a fixed quantity at
// market. It is the only event kind the execution simulator accepts
type Order struct {
	*event.Base
	ID             string
	Direction      common.Side
	Quantity       decimal.Decimal
	ReferencePrice decimal.Decimal
}
