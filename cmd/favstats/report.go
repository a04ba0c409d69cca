package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/favstats/internal/reporting"
	"github.com/yourusername/favstats/internal/service"
)

func newReportCmd() *cobra.Command {
	var (
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the favorite table and the per game type statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Report.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Report.OutputDir = outputDir
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pipeline, err := newPipeline()
			if err != nil {
				return err
			}

			report, err := pipeline.Run(ctx)
			if err != nil {
				logger.WithError(err).Error("Report run failed")
				return err
			}

			tables := reporting.NewTables(report.Races, report.Statistics)
			if err := reporting.Render(cmd.OutOrStdout(), cfg.Report.Format, tables); err != nil {
				return err
			}

			return exportReport(report)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv or json")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Also write the tables into this directory")
	return cmd
}

// exportReport writes the report files when an output directory is configured
func exportReport(report *service.Report) error {
	if cfg.Report.OutputDir == "" {
		return nil
	}

	tables := reporting.NewTables(report.Races, report.Statistics)
	paths, err := reporting.ExportFiles(cfg.Report.OutputDir, cfg.Report.Format, tables)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"files":  paths,
	}).Info("Report exported")
	return nil
}
