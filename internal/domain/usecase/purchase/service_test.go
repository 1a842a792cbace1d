package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/referral"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/yield"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/logger"
	mockcore "github.com/rafaelmeira/boatvest/mocks/port/core"
	mockpersistence "github.com/rafaelmeira/boatvest/mocks/port/persistence"
)

type purchaseFixture struct {
	service   *Service
	seq       *sequencer.Sequencer
	uow       *mockpersistence.MockUnitOfWork
	users     *mockpersistence.MockUserRepository
	holdings  *mockpersistence.MockHoldingRepository
	referrals *mockpersistence.MockReferralRepository
	now       time.Time
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		uow:       mockpersistence.NewMockUnitOfWork(),
		users:     new(mockpersistence.MockUserRepository),
		holdings:  new(mockpersistence.MockHoldingRepository),
		referrals: new(mockpersistence.MockReferralRepository),
		now:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	tp := new(mockcore.MockTimeProvider)
	tp.On("Now").Return(f.now)
	log := logger.NewNoopLogger()

	f.seq = sequencer.New(log)
	yieldService := yield.NewService(f.users, f.holdings, f.seq, tp, log)
	referralService := referral.NewService(f.users, f.referrals, f.uow, referral.FlatPolicy{FirstBps: 3700, SubsequentBps: 100}, log)
	f.service = NewService(entity.DefaultCatalog(), f.uow, f.users, f.holdings, yieldService, referralService, f.seq, tp, log)
	return f
}

// expectNoPendingYield satisfies the accrual pass that runs before the debit
func (f *purchaseFixture) expectNoPendingYield(userID uint64, balance int64) {
	user := &entity.User{ID: userID, Phone: "11988887777"}
	user.HydrateBalance(balance)
	f.holdings.On("ListByUser", mock.Anything, userID).Return([]entity.Holding{}, nil)
	f.users.On("GetByID", mock.Anything, userID).Return(user, nil)
}

func TestBuyUnknownAsset(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	_, err := f.service.Buy(context.Background(), 42, 999)

	assert.ErrorIs(t, err, errs.ErrAssetNotFound)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestBuyInsufficientBalance(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	f.expectNoPendingYield(42, 5000)
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("AdjustBalance", mock.Anything, uint64(42), int64(-7000)).
		Return(nil, errs.NewInsufficientBalanceError(42, "70.00", "50.00"))
	f.uow.On("Rollback", mock.Anything).Return(nil)

	_, err := f.service.Buy(context.Background(), 42, 1)

	assert.True(t, errs.IsInsufficientBalanceError(err))
	f.uow.AssertCalled(t, "Rollback", mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBuyRollsBackWhenHoldingInsertFails(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	buyer := &entity.User{ID: 42, Phone: "11988887777"}
	buyer.HydrateBalance(3000)

	f.expectNoPendingYield(42, 10000)
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("AdjustBalance", mock.Anything, uint64(42), int64(-7000)).Return(buyer, nil)
	f.uow.HoldingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Holding")).
		Return(errs.ErrDatabaseConnection)
	f.uow.On("Rollback", mock.Anything).Return(nil)

	_, err := f.service.Buy(context.Background(), 42, 1)

	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	f.uow.AssertCalled(t, "Rollback", mock.Anything)
}

func TestBuyFirstPurchaseSettlesReferral(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	buyer := &entity.User{ID: 42, Phone: "11988887777", InviterCode: "AbC123"}
	buyer.HydrateBalance(3000)

	f.expectNoPendingYield(42, 10000)
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("AdjustBalance", mock.Anything, uint64(42), int64(-7000)).Return(buyer, nil)
	f.uow.HoldingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Holding")).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.holdings.On("CountByUser", mock.Anything, uint64(42)).Return(int64(1), nil)

	f.users.On("GetByInviteCode", mock.Anything, "AbC123").Return(&entity.User{ID: 3}, nil)
	f.referrals.On("GetByInviterAndPhone", mock.Anything, uint64(3), "11988887777").
		Return(&entity.ReferralRecord{ID: 9, InviterID: 3}, nil)
	f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).Return(&entity.User{ID: 3}, nil)
	f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil)
	f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).Return(nil)
	f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), int64(2590)).Return(true, nil)

	result, err := f.service.Buy(context.Background(), 42, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), result.NewBalance)
	require.NotNil(t, result.Holding)
	assert.Equal(t, "Bote Inflável", result.Holding.AssetName)
	assert.Equal(t, int64(1500), result.Holding.DailyYield)
	assert.Equal(t, f.now, result.Holding.PurchasedAt)
	f.uow.ReferralRepo.AssertExpectations(t)
	f.uow.UserRepo.AssertExpectations(t)
}

func TestBuySecondPurchaseSkipsSettlement(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	buyer := &entity.User{ID: 42, Phone: "11988887777", InviterCode: "AbC123"}
	buyer.HydrateBalance(18000)

	f.expectNoPendingYield(42, 43000)
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("AdjustBalance", mock.Anything, uint64(42), int64(-25000)).Return(buyer, nil)
	f.uow.HoldingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Holding")).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.holdings.On("CountByUser", mock.Anything, uint64(42)).Return(int64(2), nil)

	result, err := f.service.Buy(context.Background(), 42, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(18000), result.NewBalance)
	f.users.AssertNotCalled(t, "GetByInviteCode", mock.Anything, mock.Anything)
}

func TestBuySettlementFailureDoesNotFailPurchase(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	buyer := &entity.User{ID: 42, Phone: "11988887777", InviterCode: "AbC123"}
	buyer.HydrateBalance(3000)

	f.expectNoPendingYield(42, 10000)
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("AdjustBalance", mock.Anything, uint64(42), int64(-7000)).Return(buyer, nil)
	f.uow.HoldingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Holding")).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.holdings.On("CountByUser", mock.Anything, uint64(42)).Return(int64(1), nil)
	f.users.On("GetByInviteCode", mock.Anything, "AbC123").Return(nil, errs.ErrDatabaseConnection)

	result, err := f.service.Buy(context.Background(), 42, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), result.NewBalance)
}

func TestListHoldings(t *testing.T) {
	f := newPurchaseFixture()
	defer f.seq.Shutdown()

	want := []entity.Holding{{ID: 1, UserID: 42, AssetName: "Veleiro Clássico"}}
	f.holdings.On("ListByUser", mock.Anything, uint64(42)).Return(want, nil)

	got, err := f.service.ListHoldings(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
