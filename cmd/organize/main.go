package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	verbose     bool
	days        int
	dryRun      bool
	overwrite   bool
	excludes    []string
	outputFmt   string
	reportFile  string
	logFile     string
	logLevel    string
	logFormat   string
	interactive bool
	initConfig  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "Sort a cluttered folder into category subfolders",
	Long: `Organize moves every file directly inside a directory into a category
subfolder. Files not modified for a configurable number of days go to the
archive folder; the rest are sorted by extension, then by content type, and
anything unrecognized lands in the fallback folder. Subdirectories are left
alone.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrganize(cmd, args, false)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [directory]",
	Short: "Show where each file would go without moving anything",
	Long:  `Classifies every file in the directory and prints the resulting plan. Nothing is created or moved.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrganize(cmd, args, true)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the config file location and the effective configuration. Use --init to write an example file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (also logs to stderr)")
	rootCmd.PersistentFlags().IntVar(&days, "days", 0, "archive files not modified for this many days (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "replace files of the same name in destination folders")
	rootCmd.PersistentFlags().StringSliceVar(&excludes, "exclude", nil, "glob pattern of filenames to leave in place (repeatable)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "summary", "report format (summary, table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&reportFile, "report-file", "", "save the report to a file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append structured logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	// Organize flags
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be moved without moving anything")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show a live progress view")

	// Config flags
	configCmd.Flags().BoolVar(&initConfig, "init", false, "write an example config file if none exists")

	// Add commands
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
}
