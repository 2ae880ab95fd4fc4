package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/shelterdesk/shelterdesk/internal/jobs"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// ScheduleScanner revalidates stored schedules. Implemented by
// rentschedule.Service.
type ScheduleScanner interface {
	Scan(ctx context.Context) (int, []rentschedule.DriftReport)
}

// IntegrityScanJob recomputes every stored schedule's subtotals and totals and
// reports drift. It never mutates the stored data.
type IntegrityScanJob struct {
	Scanner ScheduleScanner
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewIntegrityScanJob wires dependencies for the scan handler.
func NewIntegrityScanJob(scanner ScheduleScanner, logger *slog.Logger, metrics *jobmetrics.Metrics) *IntegrityScanJob {
	return &IntegrityScanJob{Scanner: scanner, Logger: logger, Metrics: metrics}
}

// Handle executes the integrity scan.
func (j *IntegrityScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Scanner == nil {
		return errors.New("integrity scan: handler not configured")
	}
	var payload IntegrityScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskScheduleIntegrityScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting schedule integrity scan")

	scanned, drift := j.Scanner.Scan(ctx)
	for _, report := range drift {
		logger.Warn("schedule integrity drift",
			slog.Int64("property_id", report.PropertyID),
			slog.Any("error", report.Err))
		j.Metrics.AddDrift(report.PropertyID, 1)
	}

	logger.Info("schedule integrity scan finished",
		slog.Int("scanned", scanned),
		slog.Int("drift", len(drift)))

	if len(drift) > 0 {
		resultErr = errors.New("schedule integrity drift detected")
		return resultErr
	}
	return nil
}

func (j *IntegrityScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
