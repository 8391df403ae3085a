package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenilsonani/folder-organizer/internal/classifier"
	"github.com/fenilsonani/folder-organizer/internal/config"
	"github.com/fenilsonani/folder-organizer/internal/logging"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/reporter"
	"github.com/fenilsonani/folder-organizer/internal/ui"
	"github.com/fenilsonani/folder-organizer/internal/ui/models"
	uiutils "github.com/fenilsonani/folder-organizer/internal/ui/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runOrganize(cmd *cobra.Command, args []string, plan bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if plan {
		cfg.DryRun = true
	}

	target := cfg.TargetDir
	if len(args) == 1 {
		target = args[0]
	}

	format, err := reporter.ParseFormat(outputFmt)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	c := classifier.New(cfg.Rules(), cfg.Resolver())
	opts := organizer.Options{
		Overwrite: cfg.Overwrite,
		DryRun:    cfg.DryRun,
		Exclude:   cfg.ExcludePattern,
	}
	if cfg.Log.File != "" {
		// A log file inside the target must not be organized while it is being written
		opts.Keep = append(opts.Keep, cfg.Log.File)
	}

	useTUI := interactive && uiutils.IsTerminal(os.Stdout)
	if interactive && !useTUI {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal, falling back to line output")
	}

	runID := uuid.NewString()
	sinks := organizer.MultiSink{logging.NewEventSink(logger, runID)}

	var feed *models.EventFeed
	if useTUI {
		feed = models.NewEventFeed(64)
		sinks = append(sinks, feed)
	} else if !plan && format == reporter.FormatSummary && reportFile == "" {
		sinks = append(sinks, ui.NewConsoleSink(os.Stdout, verbose))
	}

	opts.RunID = runID
	org := organizer.New(target, c, sinks, opts)

	logger.Info("organize started",
		"run_id", runID,
		"target", target,
		"dry_run", cfg.DryRun,
		"days_to_archive", cfg.DaysToArchive,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *organizer.Result
	if useTUI {
		result, err = ui.RunInteractive(ctx, org, feed)
	} else {
		result, err = org.Run(ctx)
	}
	if err != nil {
		logger.Error("organize failed", "run_id", runID, "error", err)
		return fmt.Errorf("organize failed: %w", err)
	}
	if result == nil {
		return fmt.Errorf("organize did not complete")
	}

	logger.Info("organize finished",
		"run_id", result.RunID,
		"moved", result.Moved,
		"archived", result.Archived,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"interrupted", result.Interrupted,
	)

	if err := writeReport(os.Stdout, result, format, plan); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		fmt.Fprint(os.Stderr, organizer.FormatErrorSummary(result.Errors))
	}
	if result.Interrupted {
		fmt.Fprintln(os.Stderr, "\nInterrupted: remaining files were left in place.")
	}

	return nil
}

func writeReport(w io.Writer, result *organizer.Result, format reporter.OutputFormat, plan bool) error {
	if reportFile != "" {
		if err := reporter.SaveToFile(result, reportFile, format); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(w, "Report saved to: %s\n", reportFile)
		return nil
	}

	if plan && format == reporter.FormatSummary {
		ui.PrintPlanTree(w, result)
		return nil
	}

	fmt.Fprintln(w)
	if err := reporter.New(w, format).Report(result); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

// applyFlags overrides config values with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("days") {
		cfg.DaysToArchive = days
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("overwrite") {
		cfg.Overwrite = overwrite
	}
	if flags.Changed("exclude") {
		cfg.ExcludePattern = append(cfg.ExcludePattern, excludes...)
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

func showConfig(cmd *cobra.Command) error {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if initConfig {
		created, err := config.WriteExample(cfgPath)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "Wrote example config to %s\n", cfgPath)
		} else {
			fmt.Fprintf(out, "Config file already exists: %s\n", cfgPath)
		}
		return nil
	}

	fmt.Fprintf(out, "Config file: %s\n", cfgPath)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
		fmt.Fprintln(out, "\nTo create a config file:")
		fmt.Fprintln(out, "  organize config --init")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintf(out, "\n%s", data)
	return nil
}
