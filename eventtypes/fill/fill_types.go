package fill

import (
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// Fill is the simulated execution of an order and the only event kind
// allowed to change ledger state. The cost components record how far the
// fill price moved from the order's reference price
type Fill struct {
	*event.Base
	OrderID      string
	Direction    common.Side
	Quantity     decimal.Decimal
	FillPrice    decimal.Decimal
	SpreadCost   decimal.Decimal
	SlippageCost decimal.Decimal
	ImpactCost   decimal.Decimal
}
