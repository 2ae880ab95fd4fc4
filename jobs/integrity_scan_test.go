package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
	_ "github.com/shelterdesk/shelterdesk/testing"
)

type stubScanner struct {
	scanned int
	drift   []rentschedule.DriftReport
}

func (s *stubScanner) Scan(ctx context.Context) (int, []rentschedule.DriftReport) {
	return s.scanned, s.drift
}

type stubWarmer struct {
	warmed int
	err    error
}

func (s *stubWarmer) Warm(ctx context.Context) (int, error) {
	return s.warmed, s.err
}

func newScanTask(t *testing.T, payload IntegrityScanPayload) *asynq.Task {
	t.Helper()
	task, err := NewIntegrityScanTask(payload)
	require.NoError(t, err)
	return task
}

func TestIntegrityScanClean(t *testing.T) {
	job := NewIntegrityScanJob(&stubScanner{scanned: 3}, nil, nil)

	err := job.Handle(context.Background(), newScanTask(t, IntegrityScanPayload{Reason: "test"}))

	assert.NoError(t, err)
}

func TestIntegrityScanDriftFailsRun(t *testing.T) {
	job := NewIntegrityScanJob(&stubScanner{
		scanned: 2,
		drift:   []rentschedule.DriftReport{{PropertyID: 2, Err: errors.New("subtotal mismatch")}},
	}, nil, nil)

	err := job.Handle(context.Background(), newScanTask(t, IntegrityScanPayload{}))

	assert.Error(t, err)
}

func TestIntegrityScanBadPayloadSkipsRetry(t *testing.T) {
	job := NewIntegrityScanJob(&stubScanner{}, nil, nil)
	task := asynq.NewTask(TaskScheduleIntegrityScan, []byte("{broken"))

	err := job.Handle(context.Background(), task)

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestCacheWarmup(t *testing.T) {
	job := NewCacheWarmupJob(&stubWarmer{warmed: 5}, nil, nil)
	task, err := NewCacheWarmupTask(CacheWarmupPayload{Reason: "deploy"})
	require.NoError(t, err)

	assert.NoError(t, job.Handle(context.Background(), task))
}

func TestCacheWarmupPropagatesErrors(t *testing.T) {
	job := NewCacheWarmupJob(&stubWarmer{warmed: 1, err: errors.New("property 2: connect refused")}, nil, nil)
	task, err := NewCacheWarmupTask(CacheWarmupPayload{})
	require.NoError(t, err)

	assert.Error(t, job.Handle(context.Background(), task))
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task := newScanTask(t, IntegrityScanPayload{Reason: "nightly"})

	var payload IntegrityScanPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "nightly", payload.Reason)
	assert.Equal(t, TaskScheduleIntegrityScan, task.Type())
}
