package cli

import (
	"context"
	"errors"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// ScheduleOpsCLI exposes synchronous schedule maintenance helpers.
type ScheduleOpsCLI struct {
	service *rentschedule.Service
}

// NewScheduleOpsCLI wraps a schedule service for operator use.
func NewScheduleOpsCLI(service *rentschedule.Service) *ScheduleOpsCLI {
	return &ScheduleOpsCLI{service: service}
}

// Scan recomputes every stored schedule and reports integrity drift.
func (c *ScheduleOpsCLI) Scan(ctx context.Context) (int, []rentschedule.DriftReport, error) {
	if c == nil || c.service == nil {
		return 0, nil, errors.New("schedule cli: service not configured")
	}
	scanned, drift := c.service.Scan(ctx)
	return scanned, drift, nil
}

// Warm preloads every stored schedule into the cache.
func (c *ScheduleOpsCLI) Warm(ctx context.Context) (int, error) {
	if c == nil || c.service == nil {
		return 0, errors.New("schedule cli: service not configured")
	}
	return c.service.Warm(ctx)
}
