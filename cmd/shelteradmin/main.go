package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelterdesk/shelterdesk/cmd/shelterdesk/cli"
	"github.com/shelterdesk/shelterdesk/internal/app"
	"github.com/shelterdesk/shelterdesk/internal/platform/cache"
	"github.com/shelterdesk/shelterdesk/internal/platform/db"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
	"github.com/shelterdesk/shelterdesk/internal/seed"
	"github.com/shelterdesk/shelterdesk/jobs"
)

var rootCmd = &cobra.Command{
	Use:           "shelteradmin",
	Short:         "ShelterDesk operations CLI",
	Long:          "Operational helpers for ShelterDesk: seeding, schedule integrity scans and queue management.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		pool, err := db.New(cmd.Context(), cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seed.Run(cmd.Context(), pool); err != nil {
			return err
		}
		fmt.Println("seeded sample data, sign in as", seed.DefaultAdminEmail)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a rent schedule integrity scan now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		logger := app.NewLogger(cfg)

		pool, err := db.New(cmd.Context(), cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pool.Close()

		redisClient, err := cache.New(cmd.Context(), cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		service, err := rentschedule.NewService(
			rentschedule.NewRepository(pool),
			rentschedule.NewCache(redisClient, cfg.ScheduleCacheTTL),
			logger,
		)
		if err != nil {
			return err
		}
		ops := cli.NewScheduleOpsCLI(service)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		scanned, drift, err := ops.Scan(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("scanned %d properties\n", scanned)
		for _, report := range drift {
			fmt.Printf("drift: property %d: %v\n", report.PropertyID, report.Err)
		}
		if len(drift) > 0 {
			return fmt.Errorf("%d properties with schedule drift", len(drift))
		}
		fmt.Println("no drift detected")
		return nil
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue [status|" + jobs.TaskScheduleIntegrityScan + "|" + jobs.TaskCacheWarmup + "]",
	Short: "Inspect the job queue or enqueue a job by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = jobsCLI.Close() }()

		if args[0] == "status" {
			stats, err := jobsCLI.InspectQueue(cmd.Context())
			if err != nil {
				return fmt.Errorf("queue info: %w", err)
			}
			fmt.Printf("queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
				stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
			return nil
		}

		task, err := jobsCLI.Trigger(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s queue=%s\n", task.Type, task.ID, task.Queue)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(seedCmd, scanCmd, queueCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shelteradmin:", err)
		os.Exit(1)
	}
}
