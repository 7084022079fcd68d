// Package scheduler runs the daily automated Instagram post.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// Poster publishes a post. It is satisfied by service.AutomationService.
type Poster interface {
	Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (clients.PostResult, error)
}

// Scheduler fires the configured post on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.SchedulerSettings
	poster Poster
	entry  cron.EntryID
}

// New parses the schedule and registers the post job. The job is not started
// until Start is called.
//
// Parameters:
//   - cfg: Schedule, timezone and post content
//   - poster: Publishes the post on every tick
//
// Returns:
//   - A new Scheduler
//   - An error if the timezone or the cron expression is invalid
func New(cfg config.SchedulerSettings, poster Poster) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}

	logger := cronLogger{logger: log.With().Str("category", constants.LogCategoryScheduler).Logger()}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{cron: c, cfg: cfg, poster: poster}

	id, err := c.AddFunc(cfg.Schedule, func() { s.RunOnce(context.Background()) })
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}
	s.entry = id

	return s, nil
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().
		Str("category", constants.LogCategoryScheduler).
		Str("schedule", s.cfg.Schedule).
		Str("timezone", s.cfg.Timezone).
		Time("next_run", s.NextRun()).
		Msg("Scheduler started")
}

// Stop halts the schedule and waits for a running job to finish or for ctx
// to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Warn().Str("category", constants.LogCategoryScheduler).Msg("Scheduled post still running at shutdown")
	}
}

// NextRun reports when the job fires next. It is zero before Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entry).Next
}

// RunOnce performs a single scheduled post. A job with incomplete
// configuration is skipped and logged.
func (s *Scheduler) RunOnce(ctx context.Context) {
	logger := log.With().Str("category", constants.LogCategoryScheduler).Logger()

	if !s.cfg.Complete() {
		logger.Warn().Msg("Scheduled post skipped: credentials, image or caption not configured")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	creds := models.Credentials{Username: s.cfg.Username, Password: s.cfg.Password}
	payload := models.PostPayload{ImageURL: s.cfg.ImageURL, Caption: s.cfg.Caption}

	result, err := s.poster.Post(ctx, creds, payload)
	switch {
	case err != nil:
		logger.Error().Err(err).Msg("Scheduled post failed")
	case !result.Success:
		logger.Error().Str("reason", result.Error).Msg("Scheduled post was not published")
	default:
		logger.Info().Str("username", s.cfg.Username).Msg("Scheduled post published")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
