package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/exchange"
	"github.com/ticklab/backsim/exchange/slippage"
	"github.com/ticklab/backsim/portfolio"
	"github.com/ticklab/backsim/risk"
	"github.com/ticklab/backsim/strategies"
	"github.com/ticklab/backsim/strategies/base"
)

// ReadConfigFromFile loads a run config from a path
func ReadConfigFromFile(path string) (*Config, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %v: %w", path, err)
	}
	return LoadConfig(fileData)
}

// LoadConfig unmarshals byte data into a config struct
func LoadConfig(data []byte) (*Config, error) {
	resp := &Config{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return resp, nil
}

// Validate checks all config settings before any component is built
func (c *Config) Validate() error {
	if err := c.validateStrategy(); err != nil {
		return err
	}
	if c.InitialCash <= 0 {
		return fmt.Errorf("%w: %v", portfolio.ErrInitialCashInvalid, c.InitialCash)
	}
	riskConfig := c.RiskConfig()
	if err := riskConfig.Validate(); err != nil {
		return err
	}
	if err := c.validateExecution(); err != nil {
		return err
	}
	return c.validateData()
}

func (c *Config) validateStrategy() error {
	if c.StrategySettings.Name == "" {
		return errStrategyUnset
	}
	for _, h := range strategies.GetStrategies() {
		if strings.EqualFold(h.Name(), c.StrategySettings.Name) {
			return nil
		}
	}
	return fmt.Errorf("strategy %v %w", c.StrategySettings.Name, base.ErrStrategyNotFound)
}

func (c *Config) validateExecution() error {
	e := c.ExecutionSettings
	switch {
	case e.SpreadPct < 0:
		return fmt.Errorf("%w: %v", exchange.ErrSpreadNegative, e.SpreadPct)
	case e.BaseSlippagePct < 0:
		return fmt.Errorf("%w: %v", exchange.ErrBaseSlippageNegative, e.BaseSlippagePct)
	case e.SlippageVariationPct < 0:
		return fmt.Errorf("%w: %v", slippage.ErrVariationNegative, e.SlippageVariationPct)
	case e.ImpactFactor < 0:
		return fmt.Errorf("%w: %v", exchange.ErrImpactNegative, e.ImpactFactor)
	}
	return nil
}

func (c *Config) validateData() error {
	switch c.DataSettings.Source {
	case SourceInline:
		if len(c.DataSettings.Inline) == 0 {
			return errInlineDataUnset
		}
	case SourceCSV, SourceCSVDir, SourceJSON:
		if c.DataSettings.Path == "" {
			return fmt.Errorf("%w for source %v", errDataPathUnset, c.DataSettings.Source)
		}
	default:
		return fmt.Errorf("%w: %q", errDataSourceUnknown, c.DataSettings.Source)
	}
	return nil
}

// RiskConfig converts the raw risk thresholds into the decimal config the
// gate consumes
func (c *Config) RiskConfig() risk.Config {
	cfg := risk.Config{
		FixedQuantity:       decimal.NewFromFloat(c.RiskSettings.FixedQuantity),
		MaxPositionPct:      decimal.NewFromFloat(c.RiskSettings.MaxPositionPct),
		MaxOrderValue:       decimal.NewFromFloat(c.RiskSettings.MaxOrderValue),
		MaxTotalExposurePct: decimal.NewFromFloat(c.RiskSettings.MaxTotalExposurePct),
		MaxPositionCount:    c.RiskSettings.MaxPositionCount,
	}
	if c.RiskSettings.MaxDrawdown != nil {
		cfg.MaxDrawdown = decimal.NewNullDecimal(decimal.NewFromFloat(*c.RiskSettings.MaxDrawdown))
	}
	return cfg
}

// ExchangeConfig converts the execution cost settings into the decimal
// config the simulator consumes
func (c *Config) ExchangeConfig() exchange.Config {
	return exchange.Config{
		SpreadPct:            decimal.NewFromFloat(c.ExecutionSettings.SpreadPct),
		BaseSlippagePct:      decimal.NewFromFloat(c.ExecutionSettings.BaseSlippagePct),
		SlippageVariationPct: decimal.NewFromFloat(c.ExecutionSettings.SlippageVariationPct),
		ImpactFactor:         decimal.NewFromFloat(c.ExecutionSettings.ImpactFactor),
		Seed:                 c.ExecutionSettings.Seed,
	}
}
