package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/config"
	"github.com/ticklab/backsim/data"
	"github.com/ticklab/backsim/dispatch"
	"github.com/ticklab/backsim/eventqueue"
	"github.com/ticklab/backsim/exchange"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/portfolio"
	"github.com/ticklab/backsim/risk"
	"github.com/ticklab/backsim/statistics"
	"github.com/ticklab/backsim/strategies"
	"github.com/ticklab/backsim/strategies/base"
)

// NewFromConfig validates the config, builds every component, loads the
// price data and wires the dispatcher ready for Run
func NewFromConfig(cfg *config.Config) (*BackTest, error) {
	if cfg == nil {
		return nil, common.ErrNilArguments
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bt := &BackTest{
		cfg:        cfg,
		queue:      eventqueue.New(),
		dispatcher: dispatch.New(),
	}

	var err error
	bt.ledger, err = portfolio.Setup(decimal.NewFromFloat(cfg.InitialCash))
	if err != nil {
		return nil, err
	}
	bt.gate, err = risk.Setup(cfg.RiskConfig(), bt.ledger)
	if err != nil {
		return nil, err
	}
	bt.simulator, err = exchange.Setup(cfg.ExchangeConfig())
	if err != nil {
		return nil, err
	}
	bt.strategy, err = loadStrategy(cfg)
	if err != nil {
		return nil, err
	}
	bt.statistic = &statistics.Statistic{
		StrategyName: bt.strategy.Name(),
		Nickname:     cfg.Nickname,
		RiskFreeRate: decimal.NewFromFloat(cfg.RiskFreeRate),
	}

	series, err := loadSeries(cfg.DataSettings)
	if err != nil {
		return nil, err
	}
	bt.ticks, err = data.Interleave(series)
	if err != nil {
		return nil, err
	}

	if err = bt.registerHandlers(); err != nil {
		return nil, err
	}
	log.Infof(log.Engine, "backtest %v ready: strategy %v, %v symbol(s), %v tick(s)",
		cfg.Nickname, bt.strategy.Name(), len(series), len(bt.ticks))
	return bt, nil
}

func loadStrategy(cfg *config.Config) (strategies.Handler, error) {
	h, err := strategies.LoadStrategyByName(cfg.StrategySettings.Name)
	if err != nil {
		return nil, err
	}
	h.SetDefaults()
	if cfg.StrategySettings.Symbol != "" {
		h.SetSymbol(cfg.StrategySettings.Symbol)
	}
	if cfg.StrategySettings.CustomSettings != nil {
		err = h.SetCustomSettings(cfg.StrategySettings.CustomSettings)
		if err != nil && !errors.Is(err, base.ErrCustomSettingsUnsupported) {
			return nil, err
		}
	}
	return h, nil
}

func loadSeries(ds config.DataSettings) (map[string][]decimal.Decimal, error) {
	switch ds.Source {
	case config.SourceInline:
		return data.FromMap(ds.Inline)
	case config.SourceCSV:
		return data.FromCSVFile(ds.Path)
	case config.SourceCSVDir:
		return data.FromCSVDir(ds.Path)
	case config.SourceJSON:
		return data.FromJSONFile(ds.Path)
	}
	return nil, fmt.Errorf("unknown data source %q", ds.Source)
}

// registerHandlers wires the pipeline. Registration order is load-bearing:
// the ledger's tick handler runs before the strategy's, so every signal is
// evaluated against fresh prices
func (bt *BackTest) registerHandlers() error {
	if err := bt.dispatcher.RegisterTickHandler(bt.ledger); err != nil {
		return err
	}
	if err := bt.dispatcher.RegisterTickHandler(bt.strategy); err != nil {
		return err
	}
	if err := bt.dispatcher.RegisterSignalHandler(bt.gate); err != nil {
		return err
	}
	if err := bt.dispatcher.RegisterOrderHandler(bt.simulator); err != nil {
		return err
	}
	return bt.dispatcher.RegisterFillHandler(bt.ledger)
}

// Run seeds the loaded ticks and synchronously drains the queue to
// completion. The queue key guarantees every generated child is processed
// before any event at a later timestamp. A handler error is an invariant
// violation: the run aborts with the offending event and a ledger snapshot
func (bt *BackTest) Run() error {
	if len(bt.ticks) == 0 {
		return ErrNoTicks
	}
	for i := range bt.ticks {
		if err := bt.queue.Insert(bt.ticks[i]); err != nil {
			return err
		}
	}
	log.Infof(log.Engine, "running %v tick(s)", len(bt.ticks))
	for !bt.queue.IsEmpty() {
		ev, err := bt.queue.ExtractMin()
		if err != nil {
			return err
		}
		generated, err := bt.dispatcher.Dispatch(ev)
		if err != nil {
			return bt.abort(ev, err)
		}
		for i := range generated {
			if err = bt.queue.Insert(generated[i]); err != nil {
				return bt.abort(ev, err)
			}
		}
	}
	log.Infof(log.Engine, "run complete: %v", bt.ledger.Snapshot())
	return nil
}

func (bt *BackTest) abort(ev common.Event, err error) *FatalError {
	fatal := &FatalError{
		Timestamp: ev.GetTimestamp(),
		Event:     ev,
		Snapshot:  bt.ledger.Snapshot(),
		Err:       err,
	}
	log.Errorf(log.Engine, "%v", fatal)
	return fatal
}

// Results calculates the report for the run so far
func (bt *BackTest) Results() (*statistics.Report, error) {
	return bt.statistic.CalculateResults(bt.ledger, bt.gate.RejectionSummary())
}

// PrintResults outputs the calculated report through the log package
func (bt *BackTest) PrintResults() {
	bt.statistic.PrintResults()
}

// Reset restores every component to a runnable state while keeping the
// loaded ticks, so the same run replays deterministically
func (bt *BackTest) Reset() error {
	bt.queue.Reset()
	bt.ledger.Reset()
	bt.gate.Reset()
	bt.simulator.Reset()
	bt.statistic.Reset()
	strategy, err := loadStrategy(bt.cfg)
	if err != nil {
		return err
	}
	bt.strategy = strategy
	bt.dispatcher = dispatch.New()
	return bt.registerHandlers()
}
