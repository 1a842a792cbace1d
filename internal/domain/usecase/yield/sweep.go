package yield

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
)

// sweepTimeout bounds one full background accrual pass
const sweepTimeout = 10 * time.Minute

// Sweeper runs the accrual pass for every holder on a cron schedule, so
// yield keeps accumulating for users who do not open the app every day.
type Sweeper struct {
	service  *Service
	holdings persistence.HoldingRepository
	logger   coreport.Logger
	cron     *cron.Cron
}

func NewSweeper(service *Service, holdings persistence.HoldingRepository, logger coreport.Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		holdings: holdings,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the sweep on the given cron schedule and starts the
// scheduler. An invalid schedule is returned to the caller.
func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Yield sweep scheduled", map[string]any{
		"schedule": schedule,
	})
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Yield sweep stopped", nil)
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	userIDs, err := s.holdings.ListUserIDsWithHoldings(ctx)
	if err != nil {
		s.logger.Error("Yield sweep failed to list holders", map[string]any{
			"error": err.Error(),
		})
		return
	}

	var failed int
	for _, userID := range userIDs {
		if _, err := s.service.Accrue(ctx, userID); err != nil {
			failed++
			s.logger.Error("Yield sweep failed for user", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	s.logger.Info("Yield sweep finished", map[string]any{
		"holders": len(userIDs),
		"failed":  failed,
	})
}
