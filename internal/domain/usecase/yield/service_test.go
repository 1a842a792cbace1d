package yield

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/logger"
	mockcore "github.com/rafaelmeira/boatvest/mocks/port/core"
	mockpersistence "github.com/rafaelmeira/boatvest/mocks/port/persistence"
)

func newYieldService(users *mockpersistence.MockUserRepository, holdings *mockpersistence.MockHoldingRepository, now time.Time) (*Service, *sequencer.Sequencer) {
	tp := new(mockcore.MockTimeProvider)
	tp.On("Now").Return(now)
	seq := sequencer.New(logger.NewNoopLogger())
	return NewService(users, holdings, seq, tp, logger.NewNoopLogger()), seq
}

func userWithBalance(id uint64, balance int64) *entity.User {
	user := &entity.User{ID: id}
	user.HydrateBalance(balance)
	return user
}

func TestAccrueCreditsElapsedDays(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := t0.Add(3*24*time.Hour + 12*time.Hour)

	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, now)
	defer seq.Shutdown()

	// one holding due three days of yield, one purchased too recently
	holdings.On("ListByUser", mock.Anything, uint64(42)).Return([]entity.Holding{
		{ID: 1, UserID: 42, DailyYield: 1500, PurchasedAt: t0},
		{ID: 2, UserID: 42, DailyYield: 9000, PurchasedAt: now.Add(-time.Hour)},
	}, nil)
	users.On("AdjustBalance", mock.Anything, uint64(42), int64(4500)).
		Return(userWithBalance(42, 14500), nil)
	holdings.On("UpdateLastAccrual", mock.Anything, uint64(1), t0.Add(3*24*time.Hour)).
		Return(nil)
	users.On("GetByID", mock.Anything, uint64(42)).
		Return(userWithBalance(42, 14500), nil)

	result, err := service.Accrue(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(4500), result.Credited)
	assert.Equal(t, int64(14500), result.NewBalance)
	require.Len(t, result.Holdings, 2)
	require.NotNil(t, result.Holdings[0].LastAccrual)
	assert.Equal(t, t0.Add(3*24*time.Hour), *result.Holdings[0].LastAccrual)
	assert.Nil(t, result.Holdings[1].LastAccrual)

	users.AssertExpectations(t)
	holdings.AssertExpectations(t)
}

func TestAccrueIsIdempotentWithinADay(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := t0.Add(12 * time.Hour)

	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, now)
	defer seq.Shutdown()

	checkpoint := t0
	holdings.On("ListByUser", mock.Anything, uint64(42)).Return([]entity.Holding{
		{ID: 1, UserID: 42, DailyYield: 1500, PurchasedAt: t0.Add(-24 * time.Hour), LastAccrual: &checkpoint},
	}, nil)
	users.On("GetByID", mock.Anything, uint64(42)).
		Return(userWithBalance(42, 1500), nil)

	result, err := service.Accrue(ctx, 42)

	require.NoError(t, err)
	assert.Zero(t, result.Credited)
	users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	holdings.AssertNotCalled(t, "UpdateLastAccrual", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccrueSkipsFailingHolding(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := t0.Add(2 * 24 * time.Hour)

	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, now)
	defer seq.Shutdown()

	holdings.On("ListByUser", mock.Anything, uint64(42)).Return([]entity.Holding{
		{ID: 1, UserID: 42, DailyYield: 1000, PurchasedAt: t0},
		{ID: 2, UserID: 42, DailyYield: 2000, PurchasedAt: t0},
	}, nil)

	// first holding's credit fails; its checkpoint must not advance
	users.On("AdjustBalance", mock.Anything, uint64(42), int64(2000)).
		Return(nil, errs.ErrDatabaseConnection).Once()
	users.On("AdjustBalance", mock.Anything, uint64(42), int64(4000)).
		Return(userWithBalance(42, 4000), nil).Once()
	holdings.On("UpdateLastAccrual", mock.Anything, uint64(2), now).Return(nil)
	users.On("GetByID", mock.Anything, uint64(42)).
		Return(userWithBalance(42, 4000), nil)

	result, err := service.Accrue(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(4000), result.Credited)
	holdings.AssertNotCalled(t, "UpdateLastAccrual", mock.Anything, uint64(1), mock.Anything)
}

func TestAccrueFailsWhenHoldingsUnreadable(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, now)
	defer seq.Shutdown()

	holdings.On("ListByUser", mock.Anything, uint64(42)).
		Return(nil, errs.ErrDatabaseConnection)

	_, err := service.Accrue(ctx, 42)

	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
}
