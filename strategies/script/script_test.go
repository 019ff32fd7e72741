package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/strategies/base"
)

const bandScript = `
signal := ""
if len(prices) >= 3 && price < 95 && position == 0 {
	signal = "buy"
}
if position > 0 && price > 105 {
	signal = "sell"
}
`

func loaded(t *testing.T, source string) *Strategy {
	t.Helper()
	var s Strategy
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{scriptKey: source}))
	return &s
}

func feed(t *testing.T, s *Strategy, ts int64, symbol string, price float64) []common.Event {
	t.Helper()
	tk, err := tick.New(ts, symbol, decimal.NewFromFloat(price))
	require.NoError(t, err)
	events, err := s.OnTick(tk)
	require.NoError(t, err)
	return events
}

func direction(t *testing.T, events []common.Event) common.Side {
	t.Helper()
	require.Len(t, events, 1)
	sig, ok := events[0].(*signal.Signal)
	require.True(t, ok)
	return sig.GetDirection()
}

func TestName(t *testing.T) {
	t.Parallel()
	var s Strategy
	assert.Equal(t, Name, s.Name())
	assert.NotEmpty(t, s.Description())
}

func TestOnTickWithoutScript(t *testing.T) {
	t.Parallel()
	var s Strategy
	s.SetDefaults()
	tk, err := tick.New(0, "AAPL", decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = s.OnTick(tk)
	assert.ErrorIs(t, err, ErrScriptUnset)

	_, err = s.OnTick(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)
}

func TestScriptDrivesBuysAndSells(t *testing.T) {
	t.Parallel()
	s := loaded(t, bandScript)

	assert.Empty(t, feed(t, s, 0, "AAPL", 100), "not enough history yet")
	assert.Empty(t, feed(t, s, 1, "AAPL", 100))

	events := feed(t, s, 2, "AAPL", 90)
	assert.Equal(t, common.Buy, direction(t, events))

	events = feed(t, s, 3, "AAPL", 110)
	assert.Equal(t, common.Sell, direction(t, events))

	// flat again, the entry condition can retrigger
	events = feed(t, s, 4, "AAPL", 90)
	assert.Equal(t, common.Buy, direction(t, events))
}

func TestScriptSeesPerSymbolState(t *testing.T) {
	t.Parallel()
	s := loaded(t, bandScript)
	for ts := int64(0); ts < 2; ts++ {
		require.Empty(t, feed(t, s, ts*2, "AAPL", 100))
		require.Empty(t, feed(t, s, ts*2+1, "MSFT", 100))
	}
	events := feed(t, s, 4, "AAPL", 90)
	require.Len(t, events, 1)
	assert.Equal(t, "AAPL", events[0].GetSymbol())

	// MSFT has its own position and history
	events = feed(t, s, 5, "MSFT", 90)
	require.Len(t, events, 1)
	assert.Equal(t, "MSFT", events[0].GetSymbol())
}

func TestEmptySignalStaysSilent(t *testing.T) {
	t.Parallel()
	s := loaded(t, `signal := ""`)
	assert.Empty(t, feed(t, s, 0, "AAPL", 100))
}

func TestMissingSignalStaysSilent(t *testing.T) {
	t.Parallel()
	s := loaded(t, `x := price * 2`)
	assert.Empty(t, feed(t, s, 0, "AAPL", 100))
}

func TestUnknownSignalErrors(t *testing.T) {
	t.Parallel()
	tk, err := tick.New(0, "AAPL", decimal.NewFromInt(100))
	require.NoError(t, err)

	s := loaded(t, `signal := "hold"`)
	_, err = s.OnTick(tk)
	assert.ErrorIs(t, err, ErrSignalUnknown)

	s = loaded(t, `signal := 5`)
	_, err = s.OnTick(tk)
	assert.ErrorIs(t, err, ErrSignalUnknown, "non-string signals are rejected")
}

func TestSymbolFilter(t *testing.T) {
	t.Parallel()
	s := loaded(t, `signal := "buy"`)
	s.SetSymbol("AAPL")
	assert.Empty(t, feed(t, s, 0, "MSFT", 100))
	events := feed(t, s, 1, "AAPL", 100)
	assert.Equal(t, common.Buy, direction(t, events))
}

func TestSetCustomSettingsCompilesEagerly(t *testing.T) {
	t.Parallel()
	var s Strategy
	err := s.SetCustomSettings(map[string]interface{}{scriptKey: `if {`})
	assert.ErrorIs(t, err, ErrScriptCompile)
}

func TestSetCustomSettingsValidation(t *testing.T) {
	t.Parallel()
	var s Strategy
	assert.ErrorIs(t, s.SetCustomSettings(map[string]interface{}{scriptKey: 5.0}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]interface{}{scriptPathKey: 5.0}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]interface{}{"unknown": "x"}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]interface{}{}), base.ErrInvalidCustomSettings)
	assert.ErrorIs(t, s.SetCustomSettings(map[string]interface{}{
		scriptKey:     `signal := ""`,
		scriptPathKey: "somewhere.tengo",
	}), base.ErrInvalidCustomSettings)
}

func TestScriptFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "band.tengo")
	require.NoError(t, os.WriteFile(path, []byte(bandScript), 0o644))

	var s Strategy
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{scriptPathKey: path}))

	feed(t, &s, 0, "AAPL", 100)
	feed(t, &s, 1, "AAPL", 100)
	events := feed(t, &s, 2, "AAPL", 90)
	assert.Equal(t, common.Buy, direction(t, events))

	err := s.SetCustomSettings(map[string]interface{}{scriptPathKey: filepath.Join(t.TempDir(), "missing.tengo")})
	assert.Error(t, err)
}
