package entity

import (
	"time"
)

// accrualDay is the fixed accrual period: yield is credited once per whole
// elapsed day, partial days carry over to the next evaluation.
const accrualDay = 24 * time.Hour

// Holding is a purchased asset owned by a user. LastAccrual is the
// checkpoint up to which yield has already been credited; nil means yield
// has never been credited and accrual starts at the purchase instant.
type Holding struct {
	ID          uint64
	UserID      uint64
	AssetName   string
	Price       int64 // purchase price in centavos
	DailyYield  int64 // centavos credited per elapsed whole day
	PurchasedAt time.Time
	LastAccrual *time.Time
}

// NewHolding creates a holding at the moment of purchase, with no accrual
// checkpoint yet.
func NewHolding(userID uint64, asset *Asset, purchasedAt time.Time) *Holding {
	return &Holding{
		UserID:      userID,
		AssetName:   asset.Name,
		Price:       asset.Price,
		DailyYield:  asset.DailyYield,
		PurchasedAt: purchasedAt,
	}
}

// AccrualStart returns the instant accrual resumes from: the checkpoint if
// set, the purchase time otherwise, clamped so it never exceeds now.
// Clamping guards against clock skew writing future checkpoints.
func (h *Holding) AccrualStart(now time.Time) time.Time {
	start := h.PurchasedAt
	if h.LastAccrual != nil {
		start = *h.LastAccrual
	}
	if start.After(now) {
		return now
	}
	return start
}

// Accrue computes the yield earned between the accrual start and now and,
// when at least one whole day elapsed, advances the checkpoint by exactly
// that many days. Advancing to "now" instead would silently discard the
// partial day in progress. Returns the credited centavos (zero when no full
// day elapsed).
func (h *Holding) Accrue(now time.Time) int64 {
	start := h.AccrualStart(now)

	days := int64(now.Sub(start) / accrualDay)
	if days <= 0 {
		return 0
	}

	checkpoint := start.Add(time.Duration(days) * accrualDay)
	h.LastAccrual = &checkpoint

	return h.DailyYield * days
}
