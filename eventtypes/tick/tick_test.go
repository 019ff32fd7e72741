package tick

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticklab/backsim/common"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tk, err := New(3, "AAPL", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.Equal(t, int64(3), tk.GetTimestamp())
	assert.Equal(t, "AAPL", tk.GetSymbol())
	assert.Equal(t, common.KindTick, tk.GetKind())
	assert.True(t, tk.GetPrice().Equal(decimal.NewFromInt(150)))
}

func TestNewRejectsMalformed(t *testing.T) {
	t.Parallel()
	_, err := New(1, "AAPL", decimal.Zero)
	assert.ErrorIs(t, err, common.ErrPriceNotPositive)

	_, err = New(1, "AAPL", decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, common.ErrPriceNotPositive)

	_, err = New(-1, "AAPL", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, common.ErrNegativeTimestamp)

	_, err = New(1, "", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, common.ErrUnsetSymbol)
}
