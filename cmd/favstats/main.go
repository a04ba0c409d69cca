// Package main provides the favstats command line entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/favstats/internal/config"
	"github.com/yourusername/favstats/internal/datasource"
	applog "github.com/yourusername/favstats/internal/logger"
	"github.com/yourusername/favstats/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// testGameTypes are the only game types with disk fixtures
var testGameTypes = []string{"V75"}

var (
	configFile string
	testMode   bool
	logger     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test", false, "Read games from the fixture directory instead of the live API")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "favstats",
	Short: "Favorite statistics for ATG horse racing",
	Long: `Fetches the most recent completed ATG games per game type, ranks the
betting favorites of every race and reports how often the favorite won and
where it finished.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger = applog.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "favstats %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if testMode {
		loaded.ATG.GameTypes = testGameTypes
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newPipeline builds the data source selected by --test and the pipeline on top of it
func newPipeline() (*service.Pipeline, error) {
	factory := datasource.NewFactory(cfg, logger)
	source, err := factory.Create(datasource.SourceTypeFor(testMode))
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}

	pipeline, err := service.NewPipeline(source, service.PipelineConfig{
		GameTypes:   cfg.ATG.GameTypes,
		RecentGames: cfg.ATG.RecentGames,
		TopN:        cfg.Report.TopN,
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"source":     source.Name(),
		"game_types": strings.Join(cfg.GameTypesUpper(), ","),
		"version":    Version,
	}).Debug("Pipeline configured")
	return pipeline, nil
}
