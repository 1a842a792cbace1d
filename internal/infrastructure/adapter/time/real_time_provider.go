package time

import (
	"context"
	"time"

	"github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// RealTimeProvider backs the TimeProvider port with the system clock.
// Accrual and token issuance go through it so tests can substitute a
// fixed clock.
type RealTimeProvider struct{}

func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
