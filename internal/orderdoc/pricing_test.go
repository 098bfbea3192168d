package orderdoc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveZeroInputs(t *testing.T) {
	assert.Equal(t, Derived{}, Derive(0, 5, 10))
	assert.Equal(t, Derived{}, Derive(10000, 0, 10))
}

func TestDeriveNoDiscountMatchesConsumer(t *testing.T) {
	for _, qty := range []int64{1, 2, 7, 100} {
		d := Derive(12345, qty, 0)
		assert.Equal(t, d.ConsumerTotal, d.OrderTotal, "qty %d", qty)
		assert.Equal(t, int64(12345), d.OrderUnitPrice, "qty %d", qty)
	}
}

func TestDeriveVatRule(t *testing.T) {
	cases := []struct {
		price int64
		qty   int64
		rate  float64
	}{
		{10000, 3, 10},
		{999, 7, 15},
		{350, 1, 0},
		{125000, 2, 33},
		{77, 13, 100},
	}
	for _, tc := range cases {
		d := Derive(tc.price, tc.qty, tc.rate)
		wantVat := int64(math.Round(float64(d.OrderTotal) / 11))
		assert.Equal(t, wantVat, d.OrderVat, "price=%d qty=%d rate=%v", tc.price, tc.qty, tc.rate)
		assert.Equal(t, d.OrderTotal, d.OrderSupply+d.OrderVat, "supply+vat must equal total")
		assert.Equal(t, d.ConsumerTotal, d.ConsumerSupply+d.ConsumerVat)
	}
}

func TestDeriveKnownScenario(t *testing.T) {
	d := Derive(10000, 3, 10)
	assert.Equal(t, int64(30000), d.ConsumerTotal)
	assert.Equal(t, int64(9000), d.OrderUnitPrice)
	assert.Equal(t, int64(27000), d.OrderTotal)
	assert.Equal(t, int64(2455), d.OrderVat)
	assert.Equal(t, int64(24545), d.OrderSupply)
}

func TestDeriveSignProperty(t *testing.T) {
	pos := Derive(10000, 3, 10)
	neg := Derive(10000, -3, 10)

	assert.Equal(t, -pos.ConsumerTotal, neg.ConsumerTotal)
	assert.Equal(t, -pos.ConsumerVat, neg.ConsumerVat)
	assert.Equal(t, -pos.ConsumerSupply, neg.ConsumerSupply)
	assert.Equal(t, -pos.OrderTotal, neg.OrderTotal)
	assert.Equal(t, -pos.OrderVat, neg.OrderVat)
	assert.Equal(t, -pos.OrderSupply, neg.OrderSupply)

	// The unit rate is never sign-adjusted.
	assert.Equal(t, pos.OrderUnitPrice, neg.OrderUnitPrice)
}

func TestDeriveRoundsToWholeUnits(t *testing.T) {
	// 999 * 3 * 0.93 = 2787.21, must round to 2787.
	d := Derive(999, 3, 7)
	require.Equal(t, int64(2787), d.OrderTotal)
	// 999 * 0.93 = 929.07 per unit.
	require.Equal(t, int64(929), d.OrderUnitPrice)
}
