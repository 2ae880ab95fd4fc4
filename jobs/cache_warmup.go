package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/shelterdesk/shelterdesk/internal/jobs"
)

// ScheduleWarmer preloads schedules into the cache. Implemented by
// rentschedule.Service.
type ScheduleWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// CacheWarmupJob pre-populates the schedule cache after deploys or bumps.
type CacheWarmupJob struct {
	Warmer  ScheduleWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCacheWarmupJob wires dependencies for the warmup handler.
func NewCacheWarmupJob(warmer ScheduleWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *CacheWarmupJob {
	return &CacheWarmupJob{Warmer: warmer, Logger: logger, Metrics: metrics}
}

// Handle processes cache warmup tasks.
func (j *CacheWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Warmer == nil {
		return errors.New("cache warmup: handler not configured")
	}
	var payload CacheWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskCacheWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting schedule cache warmup")

	warmed, err := j.Warmer.Warm(ctx)
	if err != nil {
		logger.Warn("cache warmup finished with errors",
			slog.Int("warmed", warmed),
			slog.Any("error", err))
		resultErr = err
		return resultErr
	}

	logger.Info("schedule cache warmup finished", slog.Int("warmed", warmed))
	return nil
}

func (j *CacheWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
