package fill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticklab/backsim/common"
)

func TestNew(t *testing.T) {
	t.Parallel()
	f, err := New(9, "AAPL", common.Sell, decimal.NewFromInt(5), decimal.NewFromFloat(99.5), "order-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), f.GetTimestamp())
	assert.Equal(t, common.KindFill, f.GetKind())
	assert.Equal(t, "order-1", f.OrderID)
	assert.True(t, f.GetFillPrice().Equal(decimal.NewFromFloat(99.5)))
}

func TestSignedQuantity(t *testing.T) {
	t.Parallel()
	buy, err := New(9, "AAPL", common.Buy, decimal.NewFromInt(5), decimal.NewFromInt(100), "order-1")
	require.NoError(t, err)
	assert.True(t, buy.SignedQuantity().Equal(decimal.NewFromInt(5)))

	sell, err := New(9, "AAPL", common.Sell, decimal.NewFromInt(5), decimal.NewFromInt(100), "order-2")
	require.NoError(t, err)
	assert.True(t, sell.SignedQuantity().Equal(decimal.NewFromInt(-5)))
}

func TestTotalCost(t *testing.T) {
	t.Parallel()
	f, err := New(9, "AAPL", common.Buy, decimal.NewFromInt(5), decimal.NewFromInt(100), "order-1")
	require.NoError(t, err)
	f.SpreadCost = decimal.NewFromFloat(0.1)
	f.SlippageCost = decimal.NewFromFloat(0.05)
	f.ImpactCost = decimal.NewFromFloat(0.02)
	assert.True(t, f.TotalCost().Equal(decimal.NewFromFloat(0.17)))
}

func TestNewRejectsMalformed(t *testing.T) {
	t.Parallel()
	_, err := New(9, "AAPL", common.Buy, decimal.Zero, decimal.NewFromInt(100), "order-1")
	assert.ErrorIs(t, err, common.ErrQuantityNotPositive)

	_, err = New(9, "AAPL", common.Buy, decimal.NewFromInt(5), decimal.NewFromInt(-1), "order-1")
	assert.ErrorIs(t, err, common.ErrPriceNotPositive)

	_, err = New(9, "AAPL", common.Side("X"), decimal.NewFromInt(5), decimal.NewFromInt(100), "order-1")
	assert.ErrorIs(t, err, common.ErrInvalidDirection)
}
