package account

import (
	"context"
	"errors"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
)

// Service handles registration, login and profile lookups
type Service struct {
	users        persistence.UserRepository
	referrals    persistence.ReferralRepository
	hasher       gateway.PasswordHasher
	tokens       gateway.TokenIssuer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewService(
	users persistence.UserRepository,
	referrals persistence.ReferralRepository,
	hasher gateway.PasswordHasher,
	tokens gateway.TokenIssuer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:        users,
		referrals:    referrals,
		hasher:       hasher,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Register creates a new account. The phone number is the login identity and
// must be unique. When inviterCode resolves to an existing user, a pending
// referral record is created for that inviter; an unknown code is logged and
// otherwise ignored so a mistyped code never blocks signup.
//
// Possible errors:
//   - errs.ErrInvalidRequest: name, phone or password is empty
//   - errs.ErrDuplicatePhone: phone already registered
//   - errs.ErrInternalServer: hashing or persistence failure
func (s *Service) Register(ctx context.Context, name, phone, password, inviterCode string) (*entity.User, error) {
	if name == "" || phone == "" || password == "" {
		return nil, errs.ErrInvalidRequest
	}

	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		s.logger.Warn("Registration rejected, phone already in use", map[string]any{
			"phone": phone,
		})
		return nil, errs.ErrDuplicatePhone
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(name, phone, hash, inviterCode, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":     user.ID,
		"invite_code": user.InviteCode,
	})

	if user.HasInviter() {
		s.recordReferral(ctx, user)
	}

	return user, nil
}

// recordReferral links the new user to their inviter. Failures are logged
// and swallowed; the account itself is already created.
func (s *Service) recordReferral(ctx context.Context, user *entity.User) {
	inviter, err := s.users.GetByInviteCode(ctx, user.InviterCode)
	if err != nil {
		s.logger.Warn("Inviter code did not resolve, skipping referral record", map[string]any{
			"user_id":      user.ID,
			"inviter_code": user.InviterCode,
			"error":        err.Error(),
		})
		return
	}

	record := entity.NewReferralRecord(inviter.ID, user.Name, user.Phone, s.timeProvider.Now())
	if err := s.referrals.Create(ctx, record); err != nil {
		s.logger.Error("Failed to create referral record", map[string]any{
			"user_id":    user.ID,
			"inviter_id": inviter.ID,
			"error":      err.Error(),
		})
		return
	}

	s.logger.Info("Referral record created", map[string]any{
		"inviter_id":    inviter.ID,
		"invited_phone": user.Phone,
	})
}

// Login verifies phone and password and issues a session token. An unknown
// phone and a wrong password both map to ErrInvalidCredentials so the
// response does not reveal which one failed.
//
// Possible errors:
//   - errs.ErrInvalidCredentials: unknown phone or wrong password
//   - errs.ErrInternalServer: token issuance failure
func (s *Service) Login(ctx context.Context, phone, password string) (*entity.User, string, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("Login failed, wrong password", map[string]any{
			"user_id": user.ID,
		})
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, "", errs.ErrInternalServer
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
	})
	return user, token, nil
}

// Profile returns the user's current account state.
//
// Possible errors:
//   - errs.ErrUserNotFound: no such user
func (s *Service) Profile(ctx context.Context, userID uint64) (*entity.User, error) {
	return s.users.GetByID(ctx, userID)
}
