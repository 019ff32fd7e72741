package slippage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	t.Parallel()
	_, err := NewModel(decimal.NewFromFloat(-0.01), 42)
	assert.ErrorIs(t, err, ErrVariationNegative)

	m, err := NewModel(decimal.NewFromFloat(0.01), 42)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSampleStaysWithinBand(t *testing.T) {
	t.Parallel()
	band := decimal.NewFromFloat(0.05)
	m, err := NewModel(band, 42)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		s := m.Sample()
		assert.True(t, s.GreaterThanOrEqual(band.Neg()), "draw %v below -%v", s, band)
		assert.True(t, s.LessThanOrEqual(band), "draw %v above %v", s, band)
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a, err := NewModel(decimal.NewFromFloat(0.05), 1)
	require.NoError(t, err)
	b, err := NewModel(decimal.NewFromFloat(0.05), 1)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.True(t, a.Sample().Equal(b.Sample()), "same seed must replay the same draws")
	}

	c, err := NewModel(decimal.NewFromFloat(0.05), 2)
	require.NoError(t, err)
	d, err := NewModel(decimal.NewFromFloat(0.05), 1)
	require.NoError(t, err)
	assert.False(t, c.Sample().Equal(d.Sample()), "different seeds should diverge immediately")
}

func TestZeroVariationAlwaysZero(t *testing.T) {
	t.Parallel()
	m, err := NewModel(decimal.Zero, 42)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.True(t, m.Sample().IsZero())
	}
}

func TestReseed(t *testing.T) {
	t.Parallel()
	m, err := NewModel(decimal.NewFromFloat(0.05), 7)
	require.NoError(t, err)
	first := make([]decimal.Decimal, 5)
	for i := range first {
		first[i] = m.Sample()
	}
	m.Reseed()
	for i := range first {
		assert.True(t, m.Sample().Equal(first[i]), "reseed must replay draw %d", i)
	}
}
