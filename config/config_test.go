package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticklab/backsim/exchange"
	"github.com/ticklab/backsim/exchange/slippage"
	"github.com/ticklab/backsim/portfolio"
	"github.com/ticklab/backsim/risk"
	"github.com/ticklab/backsim/strategies/base"
)

const sampleConfig = `{
  "nickname": "sample",
  "initial-cash": 10000,
  "risk-free-rate": 0.01,
  "strategy-settings": {
    "name": "rsi",
    "symbol": "AAPL",
    "custom-settings": {"rsi-period": 7}
  },
  "risk-settings": {
    "fixed-quantity": 5,
    "max-drawdown": 0.25,
    "max-position-pct": 0.5,
    "max-order-value": 1000,
    "max-total-exposure-pct": 0.8,
    "max-position-count": 3
  },
  "execution-settings": {
    "spread-pct": 0.001,
    "base-slippage-pct": 0.0005,
    "slippage-variation-pct": 0.0002,
    "impact-factor": 0.0001,
    "seed": 42
  },
  "data-settings": {
    "source": "csv",
    "path": "testdata/prices.csv"
  }
}`

func validConfig() *Config {
	return &Config{
		Nickname:         "test-run",
		InitialCash:      10000,
		StrategySettings: StrategySettings{Name: "oneshot", Symbol: "AAPL"},
		RiskSettings:     RiskSettings{FixedQuantity: 10},
		DataSettings: DataSettings{
			Source: SourceInline,
			Inline: map[string][]float64{"AAPL": {100, 101}},
		},
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	c, err := LoadConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "sample", c.Nickname)
	assert.Equal(t, 10000.0, c.InitialCash)
	assert.Equal(t, 0.01, c.RiskFreeRate)
	assert.Equal(t, "rsi", c.StrategySettings.Name)
	assert.Equal(t, "AAPL", c.StrategySettings.Symbol)
	assert.Equal(t, 7.0, c.StrategySettings.CustomSettings["rsi-period"])
	require.NotNil(t, c.RiskSettings.MaxDrawdown)
	assert.Equal(t, 0.25, *c.RiskSettings.MaxDrawdown)
	assert.Equal(t, 3, c.RiskSettings.MaxPositionCount)
	assert.Equal(t, int64(42), c.ExecutionSettings.Seed)
	assert.Equal(t, SourceCSV, c.DataSettings.Source)
	assert.Equal(t, "testdata/prices.csv", c.DataSettings.Path)

	require.NoError(t, c.Validate())
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig([]byte("{"))
	assert.Error(t, err)
}

func TestLoadConfigAbsentDrawdownStaysNil(t *testing.T) {
	t.Parallel()
	c, err := LoadConfig([]byte(`{"risk-settings":{"fixed-quantity":1}}`))
	require.NoError(t, err)
	assert.Nil(t, c.RiskSettings.MaxDrawdown)
}

func TestReadConfigFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	c, err := ReadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", c.Nickname)

	_, err = ReadConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	badDrawdown := 1.5
	cases := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "strategy name case-insensitive", mutate: func(c *Config) {
			c.StrategySettings.Name = "OneShot"
		}},
		{name: "strategy unset", mutate: func(c *Config) {
			c.StrategySettings.Name = ""
		}, err: errStrategyUnset},
		{name: "strategy unknown", mutate: func(c *Config) {
			c.StrategySettings.Name = "hodl"
		}, err: base.ErrStrategyNotFound},
		{name: "initial cash zero", mutate: func(c *Config) {
			c.InitialCash = 0
		}, err: portfolio.ErrInitialCashInvalid},
		{name: "fixed quantity zero", mutate: func(c *Config) {
			c.RiskSettings.FixedQuantity = 0
		}, err: risk.ErrFixedQuantityInvalid},
		{name: "drawdown above one", mutate: func(c *Config) {
			c.RiskSettings.MaxDrawdown = &badDrawdown
		}, err: risk.ErrMaxDrawdownInvalid},
		{name: "negative spread", mutate: func(c *Config) {
			c.ExecutionSettings.SpreadPct = -0.1
		}, err: exchange.ErrSpreadNegative},
		{name: "negative base slippage", mutate: func(c *Config) {
			c.ExecutionSettings.BaseSlippagePct = -0.1
		}, err: exchange.ErrBaseSlippageNegative},
		{name: "negative slippage variation", mutate: func(c *Config) {
			c.ExecutionSettings.SlippageVariationPct = -0.1
		}, err: slippage.ErrVariationNegative},
		{name: "negative impact", mutate: func(c *Config) {
			c.ExecutionSettings.ImpactFactor = -0.1
		}, err: exchange.ErrImpactNegative},
		{name: "unknown data source", mutate: func(c *Config) {
			c.DataSettings.Source = "postgres"
		}, err: errDataSourceUnknown},
		{name: "csv without path", mutate: func(c *Config) {
			c.DataSettings = DataSettings{Source: SourceCSV}
		}, err: errDataPathUnset},
		{name: "inline without data", mutate: func(c *Config) {
			c.DataSettings = DataSettings{Source: SourceInline}
		}, err: errInlineDataUnset},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestRiskConfig(t *testing.T) {
	t.Parallel()
	c := validConfig()
	c.RiskSettings.MaxPositionPct = 0.5
	c.RiskSettings.MaxOrderValue = 1000
	c.RiskSettings.MaxTotalExposurePct = 0.8
	c.RiskSettings.MaxPositionCount = 3

	cfg := c.RiskConfig()
	assert.True(t, cfg.FixedQuantity.Equal(decimal.NewFromInt(10)))
	assert.False(t, cfg.MaxDrawdown.Valid, "absent drawdown must stay disabled")
	assert.True(t, cfg.MaxPositionPct.Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, cfg.MaxOrderValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.MaxTotalExposurePct.Equal(decimal.NewFromFloat(0.8)))
	assert.Equal(t, 3, cfg.MaxPositionCount)
	require.NoError(t, cfg.Validate())

	dd := 0.25
	c.RiskSettings.MaxDrawdown = &dd
	cfg = c.RiskConfig()
	require.True(t, cfg.MaxDrawdown.Valid)
	assert.True(t, cfg.MaxDrawdown.Decimal.Equal(decimal.NewFromFloat(0.25)))
}

func TestExchangeConfig(t *testing.T) {
	t.Parallel()
	c := validConfig()
	c.ExecutionSettings = ExecutionSettings{
		SpreadPct:            0.001,
		BaseSlippagePct:      0.0005,
		SlippageVariationPct: 0.0002,
		ImpactFactor:         0.0001,
		Seed:                 42,
	}

	cfg := c.ExchangeConfig()
	assert.True(t, cfg.SpreadPct.Equal(decimal.NewFromFloat(0.001)))
	assert.True(t, cfg.BaseSlippagePct.Equal(decimal.NewFromFloat(0.0005)))
	assert.True(t, cfg.SlippageVariationPct.Equal(decimal.NewFromFloat(0.0002)))
	assert.True(t, cfg.ImpactFactor.Equal(decimal.NewFromFloat(0.0001)))
	assert.Equal(t, int64(42), cfg.Seed)
}
