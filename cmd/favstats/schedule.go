package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/favstats/internal/health"
	"github.com/yourusername/favstats/internal/metrics"
	"github.com/yourusername/favstats/internal/scheduler"
)

func newScheduleCmd() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Re-run the report on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Report.OutputDir == "" {
				return fmt.Errorf("report.output_dir is required in schedule mode")
			}

			pipeline, err := newPipeline()
			if err != nil {
				return err
			}

			sched := scheduler.NewScheduler(pipeline, logger)
			if err := sched.ScheduleReport(cfg.Schedule.Cron, exportReport); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			healthCfg := health.Config{
				ServiceName: "favstats",
				Version:     Version,
				Commit:      GitCommit,
				Port:        cfg.Schedule.HealthPort,
				Logger:      logger,
			}
			if cfg.Metrics.Enabled {
				metrics.InitRegistry()
				healthCfg.MetricsHandler = metrics.Handler()
				healthCfg.MetricsPath = cfg.Metrics.Path
			}
			healthServer := health.NewServer(healthCfg)
			healthServer.AddCheck("scheduler", sched)
			if err := healthServer.Start(ctx); err != nil {
				return fmt.Errorf("failed to start health server: %w", err)
			}

			if runNow {
				if err := sched.RunOnce(ctx, exportReport); err != nil {
					logger.WithError(err).Error("Initial report run failed")
				}
			}

			if err := sched.Start(); err != nil {
				return err
			}
			healthServer.SetReady(true)

			logger.WithFields(logrus.Fields{
				"cron":     cfg.Schedule.Cron,
				"next_run": sched.GetNextRun(),
				"port":     cfg.Schedule.HealthPort,
			}).Info("Scheduler is running")

			sig := <-sigChan
			logger.WithField("signal", sig).Info("Shutdown signal received")

			healthServer.SetReady(false)
			cancel()

			if err := sched.Stop(); err != nil {
				logger.WithError(err).Error("Error during scheduler shutdown")
			}
			logger.Info("favstats scheduler shut down")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run the report once before waiting for the schedule")
	return cmd
}
