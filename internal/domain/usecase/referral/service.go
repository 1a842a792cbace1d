package referral

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
)

// Service settles referral bonuses when invited users make their first purchase
type Service struct {
	users     persistence.UserRepository
	referrals persistence.ReferralRepository
	uow       persistence.UnitOfWork
	policy    Policy
	logger    coreport.Logger
}

func NewService(
	users persistence.UserRepository,
	referrals persistence.ReferralRepository,
	uow persistence.UnitOfWork,
	policy Policy,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:     users,
		referrals: referrals,
		uow:       uow,
		policy:    policy,
		logger:    logger,
	}
}

// SettleFirstPurchase pays the inviter's bonus for the invited user's first
// purchase. It resolves the inviter from the invited user's stored inviter
// code, looks up the pending referral record, then credits the inviter and
// claims the record in one transaction. A failure anywhere rolls the whole
// settlement back, so the record stays unpaid and the bonus is retried on
// the next purchase event instead of being lost.
//
// The inviter's row is locked for the duration of the transaction, which
// serializes settlements for the same inviter: each one counts the paid
// records left behind by the previous, so two invitees buying at the same
// moment cannot both draw the first-referral rate. The record claim stays
// a conditional update on top of that, so a replayed purchase event pays
// at most once.
//
// A missing inviter or record is a quiet no-op (the buyer may have signed up
// without a code, or with one that never resolved).
func (s *Service) SettleFirstPurchase(ctx context.Context, invited *entity.User, price int64) error {
	if !invited.HasInviter() {
		return nil
	}

	inviter, err := s.users.GetByInviteCode(ctx, invited.InviterCode)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Debug("No inviter for code, skipping settlement", map[string]any{
				"user_id":      invited.ID,
				"inviter_code": invited.InviterCode,
			})
			return nil
		}
		return err
	}

	record, err := s.referrals.GetByInviterAndPhone(ctx, inviter.ID, invited.Phone)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Debug("No referral record, skipping settlement", map[string]any{
				"inviter_id":    inviter.ID,
				"invited_phone": invited.Phone,
			})
			return nil
		}
		return err
	}
	if record.BonusPaid {
		return nil
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.NewSettlementError(inviter.ID, invited.Phone, "begin", err)
	}

	users := s.uow.Users(txCtx)
	referrals := s.uow.Referrals(txCtx)

	if _, err := users.GetForUpdate(txCtx, inviter.ID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return errs.NewSettlementError(inviter.ID, invited.Phone, "lock_inviter", err)
	}

	paidCount, err := referrals.CountPaidByInviter(txCtx, inviter.ID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return errs.NewSettlementError(inviter.ID, invited.Phone, "count_paid", err)
	}

	bonus := Bonus(price, s.policy.Rate(paidCount))
	if bonus <= 0 {
		_ = s.uow.Rollback(txCtx)
		return nil
	}

	if err := users.AddReferralBonus(txCtx, inviter.ID, bonus); err != nil {
		_ = s.uow.Rollback(txCtx)
		return errs.NewSettlementError(inviter.ID, invited.Phone, "credit_inviter", err)
	}

	claimed, err := referrals.MarkPaid(txCtx, record.ID, bonus)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return errs.NewSettlementError(inviter.ID, invited.Phone, "mark_paid", err)
	}
	if !claimed {
		// another settlement claimed the record; the rollback drops our credit
		_ = s.uow.Rollback(txCtx)
		s.logger.Debug("Referral record already claimed", map[string]any{
			"inviter_id": inviter.ID,
			"record_id":  record.ID,
		})
		return nil
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return errs.NewSettlementError(inviter.ID, invited.Phone, "commit", err)
	}

	s.logger.Info("Referral bonus settled", map[string]any{
		"inviter_id":    inviter.ID,
		"invited_phone": invited.Phone,
		"bonus":         bonus,
		"paid_before":   paidCount,
	})
	return nil
}

// ListByInviter returns the inviter's referral records, paid and pending
func (s *Service) ListByInviter(ctx context.Context, inviterID uint64) ([]entity.ReferralRecord, error) {
	return s.referrals.ListByInviter(ctx, inviterID)
}
