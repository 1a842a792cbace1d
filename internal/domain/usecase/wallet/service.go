package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
)

// Limits holds the wallet's business minimums in centavos
type Limits struct {
	MinDeposit    int64
	MinWithdrawal int64
}

// Service handles deposits via the payment processor and manual withdrawals
type Service struct {
	limits       Limits
	users        persistence.UserRepository
	holdings     persistence.HoldingRepository
	withdrawals  persistence.WithdrawalRepository
	uow          persistence.UnitOfWork
	payments     gateway.PaymentGateway
	mailer       gateway.Mailer
	seq          *sequencer.Sequencer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewService(
	limits Limits,
	users persistence.UserRepository,
	holdings persistence.HoldingRepository,
	withdrawals persistence.WithdrawalRepository,
	uow persistence.UnitOfWork,
	payments gateway.PaymentGateway,
	mailer gateway.Mailer,
	seq *sequencer.Sequencer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		limits:       limits,
		users:        users,
		holdings:     holdings,
		withdrawals:  withdrawals,
		uow:          uow,
		payments:     payments,
		mailer:       mailer,
		seq:          seq,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateDeposit creates a PIX charge at the processor for the given amount.
// The user id rides in the external reference; the balance is only credited
// later, when the processor reports the charge approved.
//
// Possible errors:
//   - errs.ErrBelowMinimum: amount is below the configured deposit minimum
//   - errs.ErrUserNotFound: no such user
//   - errs.ErrGatewayUnavailable: processor call failed
func (s *Service) CreateDeposit(ctx context.Context, userID uint64, amount int64) (*gateway.PixPayment, error) {
	if amount < s.limits.MinDeposit {
		return nil, errs.ErrBelowMinimum
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := BuildDepositReference(user.ID, s.timeProvider.Now())
	payment, err := s.payments.CreatePixPayment(ctx, gateway.CreatePaymentRequest{
		Amount:            amount,
		Description:       fmt.Sprintf("Depósito BoatVest - %s", user.Name),
		ExternalReference: reference,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit charge created", map[string]any{
		"user_id":    userID,
		"amount":     amount,
		"payment_id": payment.ID,
		"reference":  reference,
	})
	return payment, nil
}

// PaymentStatus proxies the processor's view of a charge
func (s *Service) PaymentStatus(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	return s.payments.GetPayment(ctx, paymentID)
}

// HandlePaymentEvent processes a processor webhook notification. Events that
// are not payment events, payments that are not approved, and references not
// produced by this system are logged and dropped without error, so the
// processor does not retry deliveries we will never act on.
//
// An approved payment credits the referenced user's balance on their
// serialized queue. The credit and a deposit ledger row keyed by the
// processor's payment id commit together; processor delivery is
// at-least-once, and the ledger's unique payment id turns a redelivery
// into a no-op instead of a second credit.
func (s *Service) HandlePaymentEvent(ctx context.Context, eventType, paymentID string) error {
	if eventType != "payment" {
		s.logger.Debug("Ignoring non-payment event", map[string]any{
			"type": eventType,
		})
		return nil
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if payment.Status != gateway.PaymentStatusApproved {
		s.logger.Info("Ignoring payment in non-approved status", map[string]any{
			"payment_id": payment.ID,
			"status":     payment.Status,
		})
		return nil
	}

	userID, err := ParseDepositReference(payment.ExternalReference)
	if err != nil {
		s.logger.Warn("Approved payment with malformed reference", map[string]any{
			"payment_id": payment.ID,
			"reference":  payment.ExternalReference,
		})
		return nil
	}

	return s.seq.Do(ctx, userID, "credit_deposit", func(ctx context.Context) error {
		txCtx, err := s.uow.Begin(ctx)
		if err != nil {
			return err
		}

		deposit := &entity.Deposit{
			UserID:     userID,
			PaymentID:  payment.ID,
			Amount:     payment.Amount,
			CreditedAt: s.timeProvider.Now(),
		}
		if err := s.uow.Deposits(txCtx).Create(txCtx, deposit); err != nil {
			_ = s.uow.Rollback(txCtx)
			if errors.Is(err, errs.ErrDepositAlreadyCredited) {
				s.logger.Info("Payment already credited, dropping redelivery", map[string]any{
					"user_id":    userID,
					"payment_id": payment.ID,
				})
				return nil
			}
			return err
		}

		user, err := s.uow.Users(txCtx).AdjustBalance(txCtx, userID, payment.Amount)
		if err != nil {
			_ = s.uow.Rollback(txCtx)
			return err
		}

		if err := s.uow.Commit(txCtx); err != nil {
			return err
		}

		s.logger.Info("Deposit credited", map[string]any{
			"user_id":     userID,
			"payment_id":  payment.ID,
			"amount":      payment.Amount,
			"new_balance": user.Balance(),
		})
		return nil
	})
}

// Withdraw debits the user immediately and appends an audit record; the
// payout itself is executed manually from the mailed notice. The debit and
// the audit record commit together. A mail failure after commit is logged
// and does not undo the withdrawal, operators reconcile from the records.
//
// Possible errors:
//   - errs.ErrBelowMinimum: amount is below the configured withdrawal minimum
//   - errs.ErrNoHoldings: user has never purchased an asset
//   - errs.ErrInsufficientBalance: amount exceeds the balance
//   - errs.ErrUserNotFound: no such user
func (s *Service) Withdraw(ctx context.Context, userID uint64, amount int64, pixKey string) (*entity.Withdrawal, error) {
	if amount < s.limits.MinWithdrawal {
		return nil, errs.ErrBelowMinimum
	}
	if pixKey == "" {
		return nil, errs.ErrInvalidRequest
	}

	var withdrawal *entity.Withdrawal
	err := s.seq.Do(ctx, userID, "withdraw", func(ctx context.Context) error {
		var err error
		withdrawal, err = s.withdrawLocked(ctx, userID, amount, pixKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWithdrawalNotice(ctx, gateway.WithdrawalNotice{
		Name:   withdrawal.Name,
		Phone:  withdrawal.Phone,
		PixKey: withdrawal.PixKey,
		Amount: withdrawal.FormattedAmount(),
	}); err != nil {
		s.logger.Error("Failed to send withdrawal notice", map[string]any{
			"user_id":       userID,
			"withdrawal_id": withdrawal.ID,
			"error":         err.Error(),
		})
	}

	return withdrawal, nil
}

func (s *Service) withdrawLocked(ctx context.Context, userID uint64, amount int64, pixKey string) (*entity.Withdrawal, error) {
	count, err := s.holdings.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.ErrNoHoldings
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.uow.Users(txCtx).AdjustBalance(txCtx, userID, -amount)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	// remember the payout key for the next withdrawal form
	if user.PixKey != pixKey {
		user.PixKey = pixKey
		if err := s.uow.Users(txCtx).Update(txCtx, user); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, err
		}
	}

	withdrawal := &entity.Withdrawal{
		UserID:      user.ID,
		Name:        user.Name,
		Phone:       user.Phone,
		PixKey:      pixKey,
		Amount:      amount,
		RequestedAt: s.timeProvider.Now(),
	}
	if err := s.uow.Withdrawals(txCtx).Create(txCtx, withdrawal); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal recorded", map[string]any{
		"user_id":       userID,
		"withdrawal_id": withdrawal.ID,
		"amount":        amount,
		"new_balance":   user.Balance(),
	})
	return withdrawal, nil
}

// History returns the user's past withdrawal requests
func (s *Service) History(ctx context.Context, userID uint64) ([]entity.Withdrawal, error) {
	return s.withdrawals.ListByUser(ctx, userID)
}
