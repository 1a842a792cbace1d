// Package gateway provides testify mocks for the gateway ports.
package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
)

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePixPayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.PixPayment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PixPayment), args.Error(1)
}

func (m *MockPaymentGateway) GetPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Payment), args.Error(1)
}

// MockMailer is a mock implementation of gateway.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWithdrawalNotice(ctx context.Context, notice gateway.WithdrawalNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of gateway.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of gateway.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID uint64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Verify(token string) (uint64, error) {
	args := m.Called(token)
	return args.Get(0).(uint64), args.Error(1)
}
