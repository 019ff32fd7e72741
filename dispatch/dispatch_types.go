package dispatch

import (
	"errors"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/fill"
	"github.com/ticklab/backsim/eventtypes/order"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/eventtypes/tick"
)

// ErrUnhandledEventType is returned when an event outside the known kinds
// reaches the dispatcher
var ErrUnhandledEventType = errors.New("unhandled event type")

// TickHandler consumes a price observation and may generate follow-on
// events carrying the same timestamp
type TickHandler interface {
	OnTick(*tick.Tick) ([]common.Event, error)
}

// SignalHandler consumes strategy intent and may generate orders
type SignalHandler interface {
	OnSignal(*signal.Signal) ([]common.Event, error)
}

// OrderHandler consumes approved orders and may generate fills
type OrderHandler interface {
	OnOrder(*order.Order) ([]common.Event, error)
}

// FillHandler consumes executed fills
type FillHandler interface {
	OnFill(*fill.Fill) ([]common.Event, error)
}

// Dispatcher routes each event to the handlers registered for its kind,
// invoking them in registration order. Registration order matters: the
// ledger must observe a tick before any strategy reacts to it, and that
// guarantee comes entirely from the order handlers were registered in.
// The dispatcher holds no business state
type Dispatcher struct {
	tickHandlers   []TickHandler
	signalHandlers []SignalHandler
	orderHandlers  []OrderHandler
	fillHandlers   []FillHandler
}
