package yield

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
)

// Result is the outcome of one accrual pass over a user's holdings
type Result struct {
	Holdings   []entity.Holding
	NewBalance int64
	Credited   int64
}

// Service advances accrual checkpoints and credits earned yield
type Service struct {
	users        persistence.UserRepository
	holdings     persistence.HoldingRepository
	seq          *sequencer.Sequencer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewService(
	users persistence.UserRepository,
	holdings persistence.HoldingRepository,
	seq *sequencer.Sequencer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:        users,
		holdings:     holdings,
		seq:          seq,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Accrue runs one accrual pass for the user, serialized on the user's queue.
//
// Possible errors:
//   - errs.ErrInvalidUserID: userID is zero
//   - errs.ErrUserNotFound: no such user
func (s *Service) Accrue(ctx context.Context, userID uint64) (*Result, error) {
	var result *Result
	err := s.seq.Do(ctx, userID, "accrue_yield", func(ctx context.Context) error {
		var err error
		result, err = s.AccrueLocked(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AccrueLocked performs the accrual pass directly. Callers must already hold
// the user's queue slot; purchase composes this inside its own serialized
// operation to avoid a self-deadlock on the sequencer.
//
// A holding that fails to accrue or persist is logged and skipped so one bad
// row never blocks the rest of the portfolio. Each holding's checkpoint only
// advances after its credit landed, so a rerun after a partial failure
// re-credits exactly the skipped holdings.
func (s *Service) AccrueLocked(ctx context.Context, userID uint64) (*Result, error) {
	all, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	var credited int64

	for i := range all {
		holding := &all[i]
		amount := holding.Accrue(now)
		if amount == 0 {
			continue
		}

		if _, err := s.users.AdjustBalance(ctx, userID, amount); err != nil {
			s.logger.Error("Failed to credit yield, skipping holding", map[string]any{
				"user_id":    userID,
				"holding_id": holding.ID,
				"amount":     amount,
				"error":      err.Error(),
			})
			continue
		}

		if err := s.holdings.UpdateLastAccrual(ctx, holding.ID, *holding.LastAccrual); err != nil {
			s.logger.Error("Failed to advance accrual checkpoint", map[string]any{
				"user_id":    userID,
				"holding_id": holding.ID,
				"error":      err.Error(),
			})
			continue
		}

		credited += amount
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if credited > 0 {
		s.logger.Info("Yield credited", map[string]any{
			"user_id":     userID,
			"credited":    credited,
			"new_balance": user.Balance(),
		})
	}

	return &Result{
		Holdings:   all,
		NewBalance: user.Balance(),
		Credited:   credited,
	}, nil
}
