package signal

import (
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/event"
)

// Signal is a strategy's declaration of intent, carrying the tick price it
// was derived from so downstream sizing does not re-read market state
type Signal struct {
	*event.Base
	Direction      common.Side
	ReferencePrice decimal.Decimal
}
