package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shelterdesk/shelterdesk/testing"
)

func TestTriggerRejectsUnsupportedJob(t *testing.T) {
	cli, err := NewJobsCLI("127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	_, err = cli.Trigger(context.Background(), "mail:send")

	assert.ErrorContains(t, err, "unsupported job")
}

func TestJobsCLINotConfigured(t *testing.T) {
	var cli *JobsCLI

	_, err := cli.Trigger(context.Background(), "cache:warmup")
	assert.Error(t, err)

	_, err = cli.InspectQueue(context.Background())
	assert.Error(t, err)
}

func TestScheduleOpsCLINotConfigured(t *testing.T) {
	var cli *ScheduleOpsCLI

	_, _, err := cli.Scan(context.Background())
	assert.Error(t, err)

	_, err = cli.Warm(context.Background())
	assert.Error(t, err)
}
