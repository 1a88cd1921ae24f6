package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler enqueues recurring maintenance tasks: a nightly sweep that
// reconciles store assets against image records, and an hourly expiry of
// stale gallery cache entries.
type Scheduler struct {
	cron  *cron.Cron
	queue *StreamQueue
	log   zerolog.Logger
}

func NewScheduler(queue *StreamQueue, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 3 * * *", s.enqueueOrphanSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 * * * *", s.enqueueCacheExpiry); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueOrphanSweep() {
	if err := s.queue.Enqueue(context.Background(), map[string]any{
		"type": "orphan-sweep",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue orphan sweep failed")
	}
}

func (s *Scheduler) enqueueCacheExpiry() {
	if err := s.queue.Enqueue(context.Background(), map[string]any{
		"type": "cache-expiry",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue cache expiry failed")
	}
}
