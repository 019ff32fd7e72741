package strategies

import (
	"fmt"
	"strings"

	"github.com/ticklab/backsim/strategies/base"
	"github.com/ticklab/backsim/strategies/meanreversion"
	"github.com/ticklab/backsim/strategies/oneshot"
	"github.com/ticklab/backsim/strategies/rsi"
	"github.com/ticklab/backsim/strategies/script"
)

// GetStrategies returns a fresh instance of every registered strategy
func GetStrategies() []Handler {
	return []Handler{
		new(oneshot.Strategy),
		new(meanreversion.Strategy),
		new(rsi.Strategy),
		new(script.Strategy),
	}
}

// LoadStrategyByName returns a fresh instance of the named strategy so no
// state leaks between runs. Matching is case-insensitive
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w: %v", base.ErrStrategyNotFound, name)
}
