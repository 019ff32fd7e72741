package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/d5/tengo/v2"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/log"
	"github.com/ticklab/backsim/strategies/base"
)

const (
	// Name is the strategy name
	Name          = "script"
	scriptKey     = "script"
	scriptPathKey = "script-path"
	description   = `Runs a user supplied tengo script once per accepted tick. The script reads prices, price, symbol and position, and assigns signal to "buy", "sell" or "" to act`

	// runTimeout bounds a single script execution so a runaway script
	// cannot hang the run
	runTimeout = 30 * time.Second
)

var (
	// ErrScriptUnset is returned when ticks arrive before a script was
	// configured
	ErrScriptUnset = errors.New("no script configured")
	// ErrScriptCompile is returned when the script source does not compile
	ErrScriptCompile = errors.New("script failed to compile")
	// ErrScriptRun is returned when a compiled script fails at runtime
	ErrScriptRun = errors.New("script failed to run")
	// ErrSignalUnknown is returned when the script assigns something other
	// than buy, sell or the empty string
	ErrSignalUnknown = errors.New("script signal not recognised")
)

// Strategy is an implementation of the strategies.Handler interface that
// defers every trading decision to a tengo script
type Strategy struct {
	base.Strategy
	compiled *tengo.Compiled
	prices   map[string][]float64
	position map[string]int64
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick exposes the symbol's state to the script, runs it and converts
// the signal variable into at most one signal event. The position variable
// carries the net direction of the signals emitted so far
func (s *Strategy) OnTick(t *tick.Tick) ([]common.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if !s.Accepts(t) {
		return nil, nil
	}
	if s.compiled == nil {
		return nil, ErrScriptUnset
	}
	if s.prices == nil {
		s.prices = make(map[string][]float64)
		s.position = make(map[string]int64)
	}

	symbol := t.GetSymbol()
	price := t.GetPrice()
	history := append(s.prices[symbol], price.InexactFloat64())
	s.prices[symbol] = history

	exported := make([]interface{}, len(history))
	for i := range history {
		exported[i] = history[i]
	}
	for name, value := range map[string]interface{}{
		"prices":   exported,
		"price":    price.InexactFloat64(),
		"symbol":   symbol,
		"position": s.position[symbol],
	} {
		if err := s.compiled.Set(name, value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScriptRun, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptRun, err)
	}

	out := s.compiled.Get("signal")
	if out == nil || out.IsUndefined() {
		return nil, nil
	}
	decision, ok := out.Value().(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrSignalUnknown, out.Value())
	}
	switch strings.ToLower(decision) {
	case "buy":
		s.position[symbol]++
		log.Debugf(log.Strategy, "%v buying %v at %v", Name, symbol, price)
		return s.Signal(t, common.Buy, "script signalled buy at %v", price)
	case "sell":
		s.position[symbol]--
		log.Debugf(log.Strategy, "%v selling %v at %v", Name, symbol, price)
		return s.Signal(t, common.Sell, "script signalled sell at %v", price)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrSignalUnknown, decision)
	}
}

// SetCustomSettings accepts the script source inline or as a file path and
// compiles it, so malformed scripts fail at setup rather than mid-run
func (s *Strategy) SetCustomSettings(customSettings map[string]interface{}) error {
	var source, path string
	for k, v := range customSettings {
		switch k {
		case scriptKey:
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: provided script value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			source = str
		case scriptPathKey:
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: provided script-path value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			path = str
		default:
			return fmt.Errorf("%w: unrecognised custom setting key %v with value %v", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if source != "" && path != "" {
		return fmt.Errorf("%w: script and script-path are mutually exclusive", base.ErrInvalidCustomSettings)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading script %v: %w", path, err)
		}
		source = string(data)
	}
	if source == "" {
		return fmt.Errorf("%w: no script source supplied", base.ErrInvalidCustomSettings)
	}
	return s.compile(source)
}

// SetDefaults has nothing to default; a script must always be supplied
func (s *Strategy) SetDefaults() {}

func (s *Strategy) compile(source string) error {
	script := tengo.NewScript([]byte(source))
	// declare everything the script may read so Set works after compiling
	for name, value := range map[string]interface{}{
		"prices":   []interface{}{},
		"price":    0.0,
		"symbol":   "",
		"position": int64(0),
	} {
		if err := script.Add(name, value); err != nil {
			return fmt.Errorf("%w: %v", ErrScriptCompile, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScriptCompile, err)
	}
	s.compiled = compiled
	return nil
}
