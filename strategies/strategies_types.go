package strategies

import (
	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/tick"
)

// Handler defines the contract every strategy implements. Strategies are
// pure tick consumers: they inspect prices and emit signal events, and
// never see orders, fills or ledger state
type Handler interface {
	Name() string
	Description() string
	OnTick(*tick.Tick) ([]common.Event, error)
	SetSymbol(string)
	Symbol() string
	SetCustomSettings(map[string]interface{}) error
	SetDefaults()
}
