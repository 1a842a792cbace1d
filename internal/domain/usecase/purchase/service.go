package purchase

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/referral"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/yield"
)

// Result is the outcome of a completed purchase
type Result struct {
	Holding    *entity.Holding
	NewBalance int64
}

// Service buys catalog assets for users
type Service struct {
	catalog      entity.Catalog
	uow          persistence.UnitOfWork
	users        persistence.UserRepository
	holdings     persistence.HoldingRepository
	yield        *yield.Service
	referrals    *referral.Service
	seq          *sequencer.Sequencer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewService(
	catalog entity.Catalog,
	uow persistence.UnitOfWork,
	users persistence.UserRepository,
	holdings persistence.HoldingRepository,
	yieldService *yield.Service,
	referrals *referral.Service,
	seq *sequencer.Sequencer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		uow:          uow,
		users:        users,
		holdings:     holdings,
		yield:        yieldService,
		referrals:    referrals,
		seq:          seq,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Buy purchases the catalog asset for the user. The whole flow is serialized
// on the user's queue: pending yield is credited first, then the debit and
// the holding insert commit in one transaction. When this turns out to be
// the buyer's first holding, the inviter's referral bonus is settled.
//
// Possible errors:
//   - errs.ErrAssetNotFound: assetID is not in the catalog
//   - errs.ErrUserNotFound: no such user
//   - errs.ErrInsufficientBalance: balance does not cover the price
func (s *Service) Buy(ctx context.Context, userID uint64, assetID uint64) (*Result, error) {
	asset, err := s.catalog.FindByID(assetID)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.seq.Do(ctx, userID, "buy_asset", func(ctx context.Context) error {
		var err error
		result, err = s.buyLocked(ctx, userID, asset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) buyLocked(ctx context.Context, userID uint64, asset *entity.Asset) (*Result, error) {
	// credit any yield earned up to the purchase moment before debiting
	if _, err := s.yield.AccrueLocked(ctx, userID); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.uow.Users(txCtx).AdjustBalance(txCtx, userID, -asset.Price)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	holding := entity.NewHolding(userID, asset, s.timeProvider.Now())
	if err := s.uow.Holdings(txCtx).Create(txCtx, holding); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Asset purchased", map[string]any{
		"user_id":     userID,
		"asset_id":    asset.ID,
		"price":       asset.Price,
		"new_balance": user.Balance(),
	})

	count, err := s.holdings.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count holdings after purchase", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	} else if count == 1 {
		if err := s.referrals.SettleFirstPurchase(ctx, user, asset.Price); err != nil {
			// the purchase itself is committed; settlement is reconciled from logs
			s.logger.Error("Referral settlement failed", errSettlementFields(err, userID))
		}
	}

	return &Result{Holding: holding, NewBalance: user.Balance()}, nil
}

// ListHoldings returns the user's holdings without accruing
func (s *Service) ListHoldings(ctx context.Context, userID uint64) ([]entity.Holding, error) {
	return s.holdings.ListByUser(ctx, userID)
}

func errSettlementFields(err error, userID uint64) map[string]any {
	type fielder interface{ LogFields() map[string]any }
	if f, ok := err.(fielder); ok {
		fields := f.LogFields()
		fields["buyer_id"] = userID
		return fields
	}
	return map[string]any{"buyer_id": userID, "error": err.Error()}
}
