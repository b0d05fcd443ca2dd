package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/cleaner"
	"github.com/ternarybob/dwitest/internal/common"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	screenshots = flag.Bool("screenshots", false, "Remove captured screenshots")
	logs        = flag.Bool("logs", false, "Remove log files")
	videos      = flag.Bool("videos", false, "Remove recorded videos")
	cache       = flag.Bool("cache", false, "Remove browser cache directories")
	jobRecords  = flag.Bool("jobs", false, "Remove the job registry records")
	all         = flag.Bool("all", false, "Remove every artifact group")
	days        = flag.Int("days", 0, "Keep artifacts newer than this many days")
	schedule    = flag.String("schedule", "", "Cron expression to run cleanup periodically instead of once")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("dwitest-cleanup version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	config, err := common.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	common.InstallCrashHandler(config.Output.LogsDir)
	defer common.RecoverWithCrashFile()

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetFullVersion())

	opts := cleaner.Options{
		Screenshots: *screenshots,
		Logs:        *logs,
		Videos:      *videos,
		Cache:       *cache,
		Jobs:        *jobRecords,
		All:         *all,
		MaxAgeDays:  *days,
	}
	// No artifact flags means clean everything.
	if !opts.Screenshots && !opts.Logs && !opts.Videos && !opts.Cache && !opts.Jobs && !opts.All {
		opts.All = true
	}

	c := cleaner.New(config)

	if *schedule != "" {
		runScheduled(c, opts, *schedule, logger)
		return
	}

	if runOnce(c, opts, logger) {
		os.Exit(1)
	}
}

// runOnce executes one cleanup pass and reports whether any step failed.
func runOnce(c *cleaner.Cleaner, opts cleaner.Options, logger arbor.ILogger) bool {
	results, err := c.Run(opts)
	for _, result := range results {
		if result.Err != nil {
			logger.Error().Str("step", result.Step).Err(result.Err).Msg("Step failed")
			continue
		}
		logger.Info().Str("step", result.Step).Int("removed", result.Removed).Msg("Step completed")
	}
	if err != nil {
		logger.Error().Err(err).Msg("Cleanup finished with failures")
		return true
	}
	logger.Info().Msg("Cleanup completed")
	return false
}

// runScheduled runs cleanup on a cron schedule until interrupted.
func runScheduled(c *cleaner.Cleaner, opts cleaner.Options, spec string, logger arbor.ILogger) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		logger.Info().Str("schedule", spec).Msg("Scheduled cleanup starting")
		runOnce(c, opts, logger)
	})
	if err != nil {
		logger.Error().Str("schedule", spec).Err(err).Msg("Invalid cron expression")
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info().Str("schedule", spec).Msg("Cleanup scheduler started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx := scheduler.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cleanup scheduler stopped")
}
