package engine

import (
	"errors"
	"fmt"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/config"
	"github.com/ticklab/backsim/dispatch"
	"github.com/ticklab/backsim/eventqueue"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/exchange"
	"github.com/ticklab/backsim/portfolio"
	"github.com/ticklab/backsim/risk"
	"github.com/ticklab/backsim/statistics"
	"github.com/ticklab/backsim/strategies"
)

// ErrNoTicks is returned when a run starts with no loaded price data
var ErrNoTicks = errors.New("no ticks loaded")

// BackTest owns every component of a single run and drives the event loop
type BackTest struct {
	cfg        *config.Config
	queue      *eventqueue.Queue
	dispatcher *dispatch.Dispatcher
	ledger     *portfolio.Ledger
	gate       *risk.Gate
	simulator  *exchange.Simulator
	strategy   strategies.Handler
	statistic  *statistics.Statistic
	ticks      []*tick.Tick
}

// FatalError carries the full context of an aborted run: the event being
// processed when the invariant broke and a ledger snapshot taken at the
// moment of abort
type FatalError struct {
	Timestamp int64
	Event     common.Event
	Snapshot  portfolio.Snapshot
	Err       error
}

// Error implements the error interface
func (e *FatalError) Error() string {
	return fmt.Sprintf("run aborted at timestamp %d processing %T for %v: %v (ledger: %v)",
		e.Timestamp, e.Event, e.Event.GetSymbol(), e.Err, e.Snapshot)
}

// Unwrap exposes the underlying violation for errors.Is checks
func (e *FatalError) Unwrap() error {
	return e.Err
}
