package referral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/rafaelmeira/boatvest/mocks/port/persistence"
)

type referralFixture struct {
	service   *Service
	users     *mockpersistence.MockUserRepository
	referrals *mockpersistence.MockReferralRepository
	uow       *mockpersistence.MockUnitOfWork
}

func newReferralFixture(policy Policy) *referralFixture {
	f := &referralFixture{
		users:     new(mockpersistence.MockUserRepository),
		referrals: new(mockpersistence.MockReferralRepository),
		uow:       mockpersistence.NewMockUnitOfWork(),
	}
	f.service = NewService(f.users, f.referrals, f.uow, policy, logger.NewNoopLogger())
	return f
}

func flatPolicy() Policy {
	return FlatPolicy{FirstBps: 3700, SubsequentBps: 100}
}

func invitedUser() *entity.User {
	return &entity.User{ID: 7, Name: "Joana", Phone: "11988887777", InviterCode: "AbC123"}
}

// expectLookup arms the reads that precede the settlement transaction
func (f *referralFixture) expectLookup(record *entity.ReferralRecord) {
	f.users.On("GetByInviteCode", mock.Anything, "AbC123").Return(&entity.User{ID: 3}, nil)
	f.referrals.On("GetByInviterAndPhone", mock.Anything, uint64(3), "11988887777").
		Return(record, nil)
}

func TestSettleFirstPurchaseWithoutInviterCode(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	buyer := invitedUser()
	buyer.InviterCode = ""

	err := f.service.SettleFirstPurchase(context.Background(), buyer, 7000)

	require.NoError(t, err)
	f.users.AssertNotCalled(t, "GetByInviteCode", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestSettleFirstPurchaseUnknownInviteCode(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	f.users.On("GetByInviteCode", mock.Anything, "AbC123").Return(nil, errs.ErrUserNotFound)

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	f.referrals.AssertNotCalled(t, "GetByInviterAndPhone", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleFirstPurchaseMissingRecord(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	f.users.On("GetByInviteCode", mock.Anything, "AbC123").Return(&entity.User{ID: 3}, nil)
	f.referrals.On("GetByInviterAndPhone", mock.Anything, uint64(3), "11988887777").
		Return(nil, errs.ErrReferralNotFound)

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestSettleFirstPurchaseAlreadyPaid(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3, BonusPaid: true})

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	f.uow.UserRepo.AssertNotCalled(t, "AddReferralBonus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleFirstPurchaseClaimLostRollsBackCredit(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3})
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).Return(&entity.User{ID: 3}, nil)
	f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil)
	f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).Return(nil)
	// another settlement claimed the record between read and update
	f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), int64(2590)).Return(false, nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	f.uow.AssertCalled(t, "Rollback", mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSettleFirstPurchaseSuccess(t *testing.T) {
	tests := []struct {
		name      string
		paidCount int64
		price     int64
		wantBonus int64
	}{
		{"first referral pays thirty seven percent", 0, 7000, 2590},
		{"later referrals pay one percent", 2, 35000, 350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReferralFixture(flatPolicy())

			f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3})
			f.uow.On("Begin", mock.Anything).Return(nil, nil)
			f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).Return(&entity.User{ID: 3}, nil)
			f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(tt.paidCount, nil)
			f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), tt.wantBonus).Return(nil)
			f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), tt.wantBonus).Return(true, nil)
			f.uow.On("Commit", mock.Anything).Return(nil)

			err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), tt.price)

			require.NoError(t, err)
			f.uow.UserRepo.AssertExpectations(t)
			f.uow.ReferralRepo.AssertExpectations(t)
			f.uow.AssertCalled(t, "Commit", mock.Anything)
		})
	}
}

// The paid count must be read under the inviter's row lock, inside the
// transaction. Counting before the lock would let two invitees' first
// purchases both see zero paid referrals and both draw the first rate.
func TestSettleFirstPurchaseLocksInviterBeforeCounting(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	var calls []string
	f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3})
	f.uow.On("Begin", mock.Anything).Return(nil, nil).
		Run(func(mock.Arguments) { calls = append(calls, "begin") })
	f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).Return(&entity.User{ID: 3}, nil).
		Run(func(mock.Arguments) { calls = append(calls, "lock") })
	f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil).
		Run(func(mock.Arguments) { calls = append(calls, "count") })
	f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).Return(nil)
	f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), int64(2590)).Return(true, nil)
	f.uow.On("Commit", mock.Anything).Return(nil).
		Run(func(mock.Arguments) { calls = append(calls, "commit") })

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "lock", "count", "commit"}, calls)
}

// A failed credit must leave the record unclaimed so the bonus can still be
// settled later, instead of a paid-but-uncredited record that every retry
// skips.
func TestSettleFirstPurchaseCreditFailureKeepsBonusSettleable(t *testing.T) {
	f := newReferralFixture(flatPolicy())

	f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3})
	f.uow.On("Begin", mock.Anything).Return(nil, nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).Return(&entity.User{ID: 3}, nil)
	f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil)
	f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).
		Return(errs.ErrDatabaseConnection).Once()
	f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).Return(nil).Once()
	f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), int64(2590)).Return(true, nil).Once()

	err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	var settlementErr *errs.SettlementError
	require.ErrorAs(t, err, &settlementErr)
	assert.Equal(t, "credit_inviter", settlementErr.Stage)
	f.uow.AssertCalled(t, "Rollback", mock.Anything)
	f.uow.ReferralRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)

	// the next purchase event settles the bonus that the rollback preserved
	err = f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

	require.NoError(t, err)
	f.uow.ReferralRepo.AssertNumberOfCalls(t, "MarkPaid", 1)
	f.uow.UserRepo.AssertNumberOfCalls(t, "AddReferralBonus", 2)
	f.uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestSettleFirstPurchaseFailuresRollBack(t *testing.T) {
	tests := []struct {
		name      string
		wantStage string
		setup     func(f *referralFixture)
	}{
		{
			name:      "inviter lock fails",
			wantStage: "lock_inviter",
			setup: func(f *referralFixture) {
				f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).
					Return(nil, errs.ErrDatabaseConnection)
			},
		},
		{
			name:      "paid count query fails",
			wantStage: "count_paid",
			setup: func(f *referralFixture) {
				f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).
					Return(&entity.User{ID: 3}, nil)
				f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).
					Return(int64(0), errs.ErrDatabaseConnection)
			},
		},
		{
			name:      "inviter credit fails",
			wantStage: "credit_inviter",
			setup: func(f *referralFixture) {
				f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).
					Return(&entity.User{ID: 3}, nil)
				f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil)
				f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).
					Return(errs.ErrDatabaseConnection)
			},
		},
		{
			name:      "claim update fails",
			wantStage: "mark_paid",
			setup: func(f *referralFixture) {
				f.uow.UserRepo.On("GetForUpdate", mock.Anything, uint64(3)).
					Return(&entity.User{ID: 3}, nil)
				f.uow.ReferralRepo.On("CountPaidByInviter", mock.Anything, uint64(3)).Return(int64(0), nil)
				f.uow.UserRepo.On("AddReferralBonus", mock.Anything, uint64(3), int64(2590)).Return(nil)
				f.uow.ReferralRepo.On("MarkPaid", mock.Anything, uint64(9), int64(2590)).
					Return(false, errs.ErrDatabaseConnection)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReferralFixture(flatPolicy())

			f.expectLookup(&entity.ReferralRecord{ID: 9, InviterID: 3})
			f.uow.On("Begin", mock.Anything).Return(nil, nil)
			f.uow.On("Rollback", mock.Anything).Return(nil)
			tt.setup(f)

			err := f.service.SettleFirstPurchase(context.Background(), invitedUser(), 7000)

			var settlementErr *errs.SettlementError
			require.ErrorAs(t, err, &settlementErr)
			assert.Equal(t, tt.wantStage, settlementErr.Stage)
			assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
			f.uow.AssertCalled(t, "Rollback", mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
