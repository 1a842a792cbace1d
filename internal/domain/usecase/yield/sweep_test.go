package yield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/rafaelmeira/boatvest/mocks/port/persistence"
)

func TestSweepAccruesEveryHolder(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, now)
	defer seq.Shutdown()
	sweeper := NewSweeper(service, holdings, logger.NewNoopLogger())

	holdings.On("ListUserIDsWithHoldings", mock.Anything).Return([]uint64{1, 2}, nil)

	// holder 1 accrues one day of yield
	holdings.On("ListByUser", mock.Anything, uint64(1)).Return([]entity.Holding{
		{ID: 10, UserID: 1, DailyYield: 1500, PurchasedAt: now.Add(-25 * time.Hour)},
	}, nil)
	users.On("AdjustBalance", mock.Anything, uint64(1), int64(1500)).
		Return(userWithBalance(1, 1500), nil)
	holdings.On("UpdateLastAccrual", mock.Anything, uint64(10), mock.Anything).Return(nil)
	users.On("GetByID", mock.Anything, uint64(1)).Return(userWithBalance(1, 1500), nil)

	// holder 2 fails, the sweep moves on
	holdings.On("ListByUser", mock.Anything, uint64(2)).Return(nil, errs.ErrDatabaseConnection)

	sweeper.sweep()

	users.AssertCalled(t, "AdjustBalance", mock.Anything, uint64(1), int64(1500))
	holdings.AssertCalled(t, "ListByUser", mock.Anything, uint64(2))
}

func TestSweeperStartRejectsInvalidSchedule(t *testing.T) {
	users := new(mockpersistence.MockUserRepository)
	holdings := new(mockpersistence.MockHoldingRepository)
	service, seq := newYieldService(users, holdings, time.Now())
	defer seq.Shutdown()
	sweeper := NewSweeper(service, holdings, logger.NewNoopLogger())

	err := sweeper.Start("not a schedule")

	require.Error(t, err)
	assert.NotNil(t, sweeper.cron)
}
