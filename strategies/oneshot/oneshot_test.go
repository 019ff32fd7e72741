package oneshot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/signal"
	"github.com/ticklab/backsim/eventtypes/tick"
)

func mustTick(t *testing.T, ts int64, symbol string, price int64) *tick.Tick {
	t.Helper()
	tk, err := tick.New(ts, symbol, decimal.NewFromInt(price))
	require.NoError(t, err)
	return tk
}

func signalOut(t *testing.T, events []common.Event) *signal.Signal {
	t.Helper()
	require.Len(t, events, 1)
	sig, ok := events[0].(*signal.Signal)
	require.True(t, ok)
	return sig
}

func TestName(t *testing.T) {
	t.Parallel()
	var s Strategy
	assert.Equal(t, Name, s.Name())
	assert.NotEmpty(t, s.Description())
}

func TestOnTickNil(t *testing.T) {
	t.Parallel()
	var s Strategy
	_, err := s.OnTick(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)
}

func TestBuyThenSellThenNothing(t *testing.T) {
	t.Parallel()
	var s Strategy

	first, err := s.OnTick(mustTick(t, 0, "AAPL", 100))
	require.NoError(t, err)
	sig := signalOut(t, first)
	assert.Equal(t, common.Buy, sig.GetDirection())
	assert.Equal(t, int64(0), sig.GetTimestamp())
	assert.True(t, sig.GetReferencePrice().Equal(decimal.NewFromInt(100)))

	second, err := s.OnTick(mustTick(t, 1, "AAPL", 105))
	require.NoError(t, err)
	sig = signalOut(t, second)
	assert.Equal(t, common.Sell, sig.GetDirection())
	assert.True(t, sig.GetReferencePrice().Equal(decimal.NewFromInt(105)))

	for ts := int64(2); ts < 10; ts++ {
		events, err := s.OnTick(mustTick(t, ts, "AAPL", 100+ts))
		require.NoError(t, err)
		assert.Empty(t, events, "done state must stay silent")
	}
}

func TestSymbolFilterHoldsState(t *testing.T) {
	t.Parallel()
	var s Strategy
	s.SetSymbol("AAPL")

	events, err := s.OnTick(mustTick(t, 0, "MSFT", 50))
	require.NoError(t, err)
	assert.Empty(t, events, "foreign symbols must not advance the state machine")

	events, err = s.OnTick(mustTick(t, 1, "AAPL", 100))
	require.NoError(t, err)
	sig := signalOut(t, events)
	assert.Equal(t, common.Buy, sig.GetDirection())
	assert.Equal(t, "AAPL", sig.GetSymbol())
}
