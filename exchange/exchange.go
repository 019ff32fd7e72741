package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/fill"
	"github.com/ticklab/backsim/eventtypes/order"
	"github.com/ticklab/backsim/exchange/slippage"
	"github.com/ticklab/backsim/log"
)

var two = decimal.NewFromInt(2)

// Setup validates the cost model and builds a simulator with its seeded
// slippage source
func Setup(cfg Config) (*Simulator, error) {
	if cfg.SpreadPct.IsNegative() {
		return nil, fmt.Errorf("%w: %v", ErrSpreadNegative, cfg.SpreadPct)
	}
	if cfg.BaseSlippagePct.IsNegative() {
		return nil, fmt.Errorf("%w: %v", ErrBaseSlippageNegative, cfg.BaseSlippagePct)
	}
	if cfg.ImpactFactor.IsNegative() {
		return nil, fmt.Errorf("%w: %v", ErrImpactNegative, cfg.ImpactFactor)
	}
	model, err := slippage.NewModel(cfg.SlippageVariationPct, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg, model: model}, nil
}

// Reset restores the slippage source so the next run replays the same
// sequence of fills
func (s *Simulator) Reset() {
	s.model.Reseed()
}

// OnOrder executes the order at its reference price adjusted for the three
// cost components. Buys pay the adjustment, sells receive less by it. The
// order's audit trail carries over onto the fill
func (s *Simulator) OnOrder(o *order.Order) ([]common.Event, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	mid := o.GetReferencePrice()
	spreadCost := mid.Mul(s.cfg.SpreadPct).Div(two)
	slippageCost := mid.Mul(s.cfg.BaseSlippagePct.Add(s.model.Sample()))
	impactCost := o.GetQuantity().Mul(s.cfg.ImpactFactor).Mul(mid)

	adjustment := spreadCost.Add(slippageCost).Add(impactCost)
	fillPrice := mid.Add(adjustment.Mul(decimal.NewFromInt(o.GetDirection().Sign())))

	f, err := fill.New(o.GetTimestamp(), o.GetSymbol(), o.GetDirection(), o.GetQuantity(), fillPrice, o.GetID())
	if err != nil {
		return nil, fmt.Errorf("executing order %v: %w", o.GetID(), err)
	}
	f.SpreadCost = spreadCost
	f.SlippageCost = slippageCost
	f.ImpactCost = impactCost
	f.Reasons = append(f.Reasons, o.Reasons...)
	f.AppendReasonf("filled %v %v at %v against reference %v", o.GetDirection(), o.GetQuantity(), fillPrice, mid)

	log.Debugf(log.Exchange, "filled %v %v %v at %v, reference %v, spread %v, slippage %v, impact %v",
		o.GetDirection(), o.GetQuantity(), o.GetSymbol(), fillPrice, mid, spreadCost, slippageCost, impactCost)
	return []common.Event{f}, nil
}
