package tick

import (
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/eventtypes/event"
)

// Tick holds a single observed price for one symbol and is the only event
// kind seeded by the driver; everything else is derived from it
type Tick struct {
	*event.Base
	Price decimal.Decimal
}
