package schedule

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"floodguard/internal/domain/gateway/cache"
	"floodguard/pkg/log"
)

// CacheSweeper drops expired entries from the in-memory assessment cache on
// an interval. Redis handles expiry itself, so the sweeper only runs when
// the in-memory cache is in use.
type CacheSweeper struct {
	scheduler gocron.Scheduler
	memCache  *cache.MemoryAssessmentCache
	interval  time.Duration
}

// NewCacheSweeper creates a sweeper for the given in-memory cache
func NewCacheSweeper(memCache *cache.MemoryAssessmentCache, interval time.Duration) (*CacheSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &CacheSweeper{
		scheduler: scheduler,
		memCache:  memCache,
		interval:  interval,
	}, nil
}

// Start schedules the periodic sweep
func (s *CacheSweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.sweep),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Infof("Cache sweeper started with interval: %s", s.interval)
	return nil
}

func (s *CacheSweeper) sweep() {
	if removed := s.memCache.Sweep(); removed > 0 {
		log.Debugf("Cache sweep removed %d expired assessments", removed)
	}
}

// Stop shuts the sweeper down
func (s *CacheSweeper) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Warnf("Cache sweeper shutdown failed: %v", err)
	}
}
