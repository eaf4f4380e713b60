package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StrataScan/internal/cache"
	"StrataScan/internal/notifier"
	"StrataScan/internal/pipeline"
	"StrataScan/internal/recorder"
)

// Scheduler refreshes the analysis on a cron cadence, storing each run in the
// cache, persisting it, and alerting on the results.
type Scheduler struct {
	cron     *cron.Cron
	analyzer *pipeline.Analyzer
	store    *cache.RunStore
	recorder recorder.Recorder
	notifier notifier.Notifier
	ctx      context.Context
	log      zerolog.Logger
}

func New(ctx context.Context, analyzer *pipeline.Analyzer, store *cache.RunStore, rec recorder.Recorder, notify notifier.Notifier, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		analyzer: analyzer,
		store:    store,
		recorder: rec,
		notifier: notify,
		ctx:      ctx,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register schedules the periodic refresh.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, s.refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes a refresh immediately, outside the cron cadence.
func (s *Scheduler) RunNow() {
	s.refresh()
}

func (s *Scheduler) refresh() {
	s.log.Info().Msg("scheduled analysis refresh")

	result, err := s.analyzer.Run(s.ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled run failed")
		s.trySend(fmt.Sprintf("❌ scheduled analysis failed: %v", err))
		return
	}

	s.store.Put(result)

	if err := s.recorder.RecordRun(result); err != nil {
		s.log.Error().Err(err).Str("run_id", result.RunID).Msg("record run failed")
	}

	if msg := notifier.FormatRunAlert(result); msg != "" {
		s.trySend(msg)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(s.ctx, text); err != nil {
		s.log.Warn().Err(err).Msg("notification failed")
	}
}
