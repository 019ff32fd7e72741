package dispatch

import (
	"fmt"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/fill"
	"github.com/ticklab/backsim/eventtypes/order"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/eventtypes/tick"
)

// New returns a dispatcher with no handlers registered
func New() *Dispatcher {
	return &Dispatcher{}
}

// RegisterTickHandler appends a tick handler to the invocation list
func (d *Dispatcher) RegisterTickHandler(h TickHandler) error {
	if h == nil {
		return common.ErrNilArguments
	}
	d.tickHandlers = append(d.tickHandlers, h)
	return nil
}

// RegisterSignalHandler appends a signal handler to the invocation list
func (d *Dispatcher) RegisterSignalHandler(h SignalHandler) error {
	if h == nil {
		return common.ErrNilArguments
	}
	d.signalHandlers = append(d.signalHandlers, h)
	return nil
}

// RegisterOrderHandler appends an order handler to the invocation list
func (d *Dispatcher) RegisterOrderHandler(h OrderHandler) error {
	if h == nil {
		return common.ErrNilArguments
	}
	d.orderHandlers = append(d.orderHandlers, h)
	return nil
}

// RegisterFillHandler appends a fill handler to the invocation list
func (d *Dispatcher) RegisterFillHandler(h FillHandler) error {
	if h == nil {
		return common.ErrNilArguments
	}
	d.fillHandlers = append(d.fillHandlers, h)
	return nil
}

// Dispatch routes the event to every handler registered for its kind and
// returns the concatenation of everything they generated, preserving
// handler order. An event kind with no handlers is silently dropped. A
// handler error aborts immediately; business rejections are not errors
func (d *Dispatcher) Dispatch(ev common.Event) ([]common.Event, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	var generated []common.Event
	switch e := ev.(type) {
	case *tick.Tick:
		for i := range d.tickHandlers {
			events, err := d.tickHandlers[i].OnTick(e)
			if err != nil {
				return nil, err
			}
			generated = append(generated, events...)
		}
	case *signal.Signal:
		for i := range d.signalHandlers {
			events, err := d.signalHandlers[i].OnSignal(e)
			if err != nil {
				return nil, err
			}
			generated = append(generated, events...)
		}
	case *order.Order:
		for i := range d.orderHandlers {
			events, err := d.orderHandlers[i].OnOrder(e)
			if err != nil {
				return nil, err
			}
			generated = append(generated, events...)
		}
	case *fill.Fill:
		for i := range d.fillHandlers {
			events, err := d.fillHandlers[i].OnFill(e)
			if err != nil {
				return nil, err
			}
			generated = append(generated, events...)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnhandledEventType, ev)
	}
	return generated, nil
}
