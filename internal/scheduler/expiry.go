package scheduler

import (
	"context"
	"fmt"
	"time"

	"weather-insurance-go/internal/lifecycle"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryScheduler periodically sweeps policies whose coverage window has
// passed into the expired state. The sweep is a single store-level
// operation, so it composes with the claim path's atomic transitions:
// a policy claimed between sweeps stays claimed.
type ExpiryScheduler struct {
	cron     *cron.Cron
	manager  *lifecycle.Manager
	schedule string
}

func NewExpiryScheduler(manager *lifecycle.Manager, schedule string) *ExpiryScheduler {
	return &ExpiryScheduler{
		cron:     cron.New(),
		manager:  manager,
		schedule: schedule,
	}
}

func (s *ExpiryScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid expiry schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	zap.L().Info("Expiry scheduler started", zap.String("schedule", s.schedule))

	// Run once at startup so a restart does not leave stale policies
	// active until the first tick.
	s.runSweep(ctx)
	return nil
}

func (s *ExpiryScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	zap.L().Info("Expiry scheduler stopped")
}

func (s *ExpiryScheduler) runSweep(ctx context.Context) {
	expired, err := s.manager.ExpirePolicies(ctx, time.Now())
	if err != nil {
		zap.L().Error("Expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		zap.L().Info("Expiry sweep completed", zap.Int64("expired", expired))
	}
}
