package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskScheduleIntegrityScan revalidates every stored rent schedule.
	TaskScheduleIntegrityScan = "schedule:integrity_scan"
	// TaskCacheWarmup preloads schedule documents into the Redis cache.
	TaskCacheWarmup = "cache:warmup"
)

// IntegrityScanPayload configures a schedule integrity scan run.
type IntegrityScanPayload struct {
	// Reason records what triggered the scan, for the job log.
	Reason string `json:"reason,omitempty"`
}

// CacheWarmupPayload configures a cache warmup run.
type CacheWarmupPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewIntegrityScanTask constructs an Asynq task for the integrity scan.
func NewIntegrityScanTask(payload IntegrityScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScheduleIntegrityScan, data), nil
}

// NewCacheWarmupTask constructs an Asynq task for the cache warmup.
func NewCacheWarmupTask(payload CacheWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheWarmup, data), nil
}
