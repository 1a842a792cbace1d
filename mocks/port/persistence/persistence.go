// Package persistence provides testify mocks for the persistence ports.
package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
)

// MockUserRepository is a mock implementation of persistence.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByInviteCode(ctx context.Context, code string) (*entity.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, userID uint64, delta int64) (*entity.User, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) AddReferralBonus(ctx context.Context, inviterID uint64, bonus int64) error {
	args := m.Called(ctx, inviterID, bonus)
	return args.Error(0)
}

// MockHoldingRepository is a mock implementation of persistence.HoldingRepository
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Create(ctx context.Context, holding *entity.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Holding), args.Error(1)
}

func (m *MockHoldingRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldingRepository) UpdateLastAccrual(ctx context.Context, holdingID uint64, checkpoint time.Time) error {
	args := m.Called(ctx, holdingID, checkpoint)
	return args.Error(0)
}

func (m *MockHoldingRepository) ListUserIDsWithHoldings(ctx context.Context) ([]uint64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

// MockReferralRepository is a mock implementation of persistence.ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, record *entity.ReferralRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReferralRepository) GetByInviterAndPhone(ctx context.Context, inviterID uint64, invitedPhone string) (*entity.ReferralRecord, error) {
	args := m.Called(ctx, inviterID, invitedPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReferralRecord), args.Error(1)
}

func (m *MockReferralRepository) CountPaidByInviter(ctx context.Context, inviterID uint64) (int64, error) {
	args := m.Called(ctx, inviterID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferralRepository) MarkPaid(ctx context.Context, recordID uint64, bonus int64) (bool, error) {
	args := m.Called(ctx, recordID, bonus)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) ListByInviter(ctx context.Context, inviterID uint64) ([]entity.ReferralRecord, error) {
	args := m.Called(ctx, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ReferralRecord), args.Error(1)
}

// MockDepositRepository is a mock implementation of persistence.DepositRepository
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *entity.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

// MockWithdrawalRepository is a mock implementation of persistence.WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Withdrawal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Withdrawal), args.Error(1)
}

// MockUnitOfWork is a mock implementation of persistence.UnitOfWork. The
// repository accessors return the repositories it was built with, standing
// in for transaction-bound instances.
type MockUnitOfWork struct {
	mock.Mock

	UserRepo       *MockUserRepository
	HoldingRepo    *MockHoldingRepository
	ReferralRepo   *MockReferralRepository
	DepositRepo    *MockDepositRepository
	WithdrawalRepo *MockWithdrawalRepository
}

// NewMockUnitOfWork wires a unit of work around fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		UserRepo:       new(MockUserRepository),
		HoldingRepo:    new(MockHoldingRepository),
		ReferralRepo:   new(MockReferralRepository),
		DepositRepo:    new(MockDepositRepository),
		WithdrawalRepo: new(MockWithdrawalRepository),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return ctx, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return m.UserRepo
}

func (m *MockUnitOfWork) Holdings(ctx context.Context) persistence.HoldingRepository {
	return m.HoldingRepo
}

func (m *MockUnitOfWork) Referrals(ctx context.Context) persistence.ReferralRepository {
	return m.ReferralRepo
}

func (m *MockUnitOfWork) Deposits(ctx context.Context) persistence.DepositRepository {
	return m.DepositRepo
}

func (m *MockUnitOfWork) Withdrawals(ctx context.Context) persistence.WithdrawalRepository {
	return m.WithdrawalRepo
}
