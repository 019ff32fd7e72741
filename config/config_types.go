package config

import "errors"

// Data source names accepted by DataSettings.Source
const (
	SourceInline = "inline"
	SourceCSV    = "csv"
	SourceCSVDir = "csv-dir"
	SourceJSON   = "json"
)

var (
	errStrategyUnset     = errors.New("strategy name unset")
	errDataSourceUnknown = errors.New("unknown data source")
	errDataPathUnset     = errors.New("data path unset")
	errInlineDataUnset   = errors.New("inline data unset")
)

// Config defines a single backtest run. Numeric settings are raw floats
// straight off the JSON and convert to decimals at the component
// boundaries
type Config struct {
	Nickname          string            `json:"nickname,omitempty"`
	InitialCash       float64           `json:"initial-cash"`
	RiskFreeRate      float64           `json:"risk-free-rate,omitempty"`
	StrategySettings  StrategySettings  `json:"strategy-settings"`
	RiskSettings      RiskSettings      `json:"risk-settings"`
	ExecutionSettings ExecutionSettings `json:"execution-settings"`
	DataSettings      DataSettings      `json:"data-settings"`
}

// StrategySettings names the strategy to run and its per-run options
type StrategySettings struct {
	Name           string                 `json:"name"`
	Symbol         string                 `json:"symbol,omitempty"`
	CustomSettings map[string]interface{} `json:"custom-settings,omitempty"`
}

// RiskSettings holds the gate thresholds. MaxDrawdown is a pointer so an
// absent key disables the check while an explicit zero tolerates no
// drawdown; the other limits treat zero as disabled
type RiskSettings struct {
	FixedQuantity       float64  `json:"fixed-quantity"`
	MaxDrawdown         *float64 `json:"max-drawdown,omitempty"`
	MaxPositionPct      float64  `json:"max-position-pct,omitempty"`
	MaxOrderValue       float64  `json:"max-order-value,omitempty"`
	MaxTotalExposurePct float64  `json:"max-total-exposure-pct,omitempty"`
	MaxPositionCount    int      `json:"max-position-count,omitempty"`
}

// ExecutionSettings holds the simulated cost model and the seed that
// makes its slippage reproducible
type ExecutionSettings struct {
	SpreadPct            float64 `json:"spread-pct,omitempty"`
	BaseSlippagePct      float64 `json:"base-slippage-pct,omitempty"`
	SlippageVariationPct float64 `json:"slippage-variation-pct,omitempty"`
	ImpactFactor         float64 `json:"impact-factor,omitempty"`
	Seed                 int64   `json:"seed,omitempty"`
}

// DataSettings selects where price histories come from. Path feeds the
// file based sources and Inline feeds the in-config source
type DataSettings struct {
	Source string               `json:"source"`
	Path   string               `json:"path,omitempty"`
	Inline map[string][]float64 `json:"inline,omitempty"`
}
