package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHolding(purchasedAt time.Time, dailyYield int64) *Holding {
	return &Holding{
		ID:          1,
		UserID:      42,
		AssetName:   "Bote Inflável",
		Price:       7000,
		DailyYield:  dailyYield,
		PurchasedAt: purchasedAt,
	}
}

func TestHoldingAccrue(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("three and a half days credits exactly three days", func(t *testing.T) {
		holding := newTestHolding(t0, 1500)

		credited := holding.Accrue(t0.Add(3*24*time.Hour + 12*time.Hour))

		assert.Equal(t, int64(3*1500), credited)
		require.NotNil(t, holding.LastAccrual)
		// the checkpoint advances by whole days, keeping the half day pending
		assert.Equal(t, t0.Add(3*24*time.Hour), *holding.LastAccrual)
	})

	t.Run("immediate second evaluation credits nothing", func(t *testing.T) {
		holding := newTestHolding(t0, 1500)
		now := t0.Add(3*24*time.Hour + 12*time.Hour)

		first := holding.Accrue(now)
		second := holding.Accrue(now)

		assert.Equal(t, int64(4500), first)
		assert.Zero(t, second)
		assert.Equal(t, t0.Add(3*24*time.Hour), *holding.LastAccrual)
	})

	t.Run("pending partial day pays out once it completes", func(t *testing.T) {
		holding := newTestHolding(t0, 1500)

		_ = holding.Accrue(t0.Add(3*24*time.Hour + 12*time.Hour))
		credited := holding.Accrue(t0.Add(4*24*time.Hour + 1*time.Minute))

		assert.Equal(t, int64(1500), credited)
		assert.Equal(t, t0.Add(4*24*time.Hour), *holding.LastAccrual)
	})

	t.Run("less than one day credits nothing and keeps checkpoint nil", func(t *testing.T) {
		holding := newTestHolding(t0, 1500)

		credited := holding.Accrue(t0.Add(23 * time.Hour))

		assert.Zero(t, credited)
		assert.Nil(t, holding.LastAccrual)
	})

	t.Run("existing checkpoint is the accrual start", func(t *testing.T) {
		holding := newTestHolding(t0, 1000)
		checkpoint := t0.Add(5 * 24 * time.Hour)
		holding.LastAccrual = &checkpoint

		credited := holding.Accrue(checkpoint.Add(2 * 24 * time.Hour))

		assert.Equal(t, int64(2000), credited)
		assert.Equal(t, checkpoint.Add(2*24*time.Hour), *holding.LastAccrual)
	})

	t.Run("future checkpoint is clamped to now", func(t *testing.T) {
		holding := newTestHolding(t0, 1000)
		future := t0.Add(10 * 24 * time.Hour)
		holding.LastAccrual = &future

		credited := holding.Accrue(t0.Add(24 * time.Hour))

		assert.Zero(t, credited)
		// the stored future checkpoint stays untouched on a zero accrual
		assert.Equal(t, future, *holding.LastAccrual)
	})
}

func TestHoldingAccrualStart(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("uses purchase time when never accrued", func(t *testing.T) {
		holding := newTestHolding(t0, 1000)
		assert.Equal(t, t0, holding.AccrualStart(t0.Add(time.Hour)))
	})

	t.Run("uses checkpoint when set", func(t *testing.T) {
		holding := newTestHolding(t0, 1000)
		checkpoint := t0.Add(48 * time.Hour)
		holding.LastAccrual = &checkpoint
		assert.Equal(t, checkpoint, holding.AccrualStart(checkpoint.Add(time.Hour)))
	})

	t.Run("clamps a start beyond now", func(t *testing.T) {
		now := t0.Add(time.Hour)
		holding := newTestHolding(t0.Add(48*time.Hour), 1000)
		assert.Equal(t, now, holding.AccrualStart(now))
	})
}

func TestNewHolding(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	asset := &Asset{ID: 3, Name: "Veleiro Clássico", Price: 60000, DailyYield: 17000}

	holding := NewHolding(42, asset, t0)

	assert.Equal(t, uint64(42), holding.UserID)
	assert.Equal(t, "Veleiro Clássico", holding.AssetName)
	assert.Equal(t, int64(60000), holding.Price)
	assert.Equal(t, int64(17000), holding.DailyYield)
	assert.Equal(t, t0, holding.PurchasedAt)
	assert.Nil(t, holding.LastAccrual)
}
