package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"floodguard/internal/domain/usecase/risk"
	"floodguard/pkg/log"
	"floodguard/pkg/redis"
)

// RiskSchedulerConfig holds configuration for the risk refresh scheduler
type RiskSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// RiskScheduler periodically warms the assessment cache for every monitored
// location. With Redis enabled the schedule is guarded by a distributed lock
// so only one instance refreshes.
type RiskScheduler struct {
	cron        *cron.Cron
	useCase     risk.UseCase
	redisClient *redis.Client
	config      *RiskSchedulerConfig
}

// NewRiskScheduler creates a new risk refresh scheduler. redisClient may be
// nil, in which case the schedule runs unguarded.
func NewRiskScheduler(useCase risk.UseCase, redisClient *redis.Client, config *RiskSchedulerConfig) *RiskScheduler {
	return &RiskScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// InitRiskScheduleTasks initializes the refresh schedule
func (s *RiskScheduler) InitRiskScheduleTasks(ctx context.Context) {
	if s.redisClient == nil {
		if err := s.startCron(); err != nil {
			log.Errorf("Failed to initialize risk scheduler, cron will not be started: %v", err)
		}
		return
	}

	go s.runWithLock(ctx)
}

// runWithLock acquires the distributed lock, starts the cron, and keeps the
// lock alive until refresh fails or the context ends
func (s *RiskScheduler) runWithLock(ctx context.Context) {
	lock := redis.NewScheduledTaskLock(
		s.redisClient,
		"risk_refresh_scheduler",
		s.getLockTTL(),
		s.getRefreshInterval(),
		"risk_schedules",
	)

	if err := lock.Lock(ctx); err != nil {
		log.Errorf("Failed to acquire distributed lock, risk scheduler will not be initialized: %v", err)
		return
	}

	refreshErrChan := lock.AutoRefresh(ctx)

	if err := s.startCron(); err != nil {
		log.Errorf("Failed to initialize risk scheduler, cron will not be started: %v", err)
		return
	}

	// Block until the lock refresh loop ends, then stop the schedule
	err := <-refreshErrChan
	s.Stop()

	if err != nil {
		log.Errorf("Risk scheduler stopped due to lock auto-refresh failure: %v", err)
	} else {
		log.Info("Risk scheduler stopped gracefully")
	}
}

func (s *RiskScheduler) startCron() error {
	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		return err
	}
	s.cron.Start()
	log.Infof("Risk refresh scheduler started with cron expression: %s", s.config.CronExpression)
	return nil
}

// ExecuteScheduledTask refreshes the assessments for all locations
func (s *RiskScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	log.Info("Risk refresh scheduled task triggered", zap.String("request_id", requestID))

	if err := s.useCase.RefreshAllScheduled(context.Background(), requestID); err != nil {
		log.Error("Scheduled risk refresh failed", zap.String("request_id", requestID), zap.Error(err))
	}
}

// Stop gracefully stops the scheduler
func (s *RiskScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *RiskScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *RiskScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}
