package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punch/internal/logger"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	configPath   string
	logLevel     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "punch [in|out]",
	Short: "punch – clock in and out, see today's and this week's totals",
	Long: `punch records clock-in and clock-out events in a plain text file and
prints today's events with the worked time of each day of the current week.

With an argument, "in" (any case) records a clock-in and anything else a
clock-out. Without an argument the report is only printed.

The report file is named by the TIME_REPORT_PATH environment variable or the
report_path setting of the --config file.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPunch,
}

// Execute is the entry point called from main.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to an optional YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format: text, json, yaml, csv")
}

func runPunch(cmd *cobra.Command, args []string) error {
	opts := options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Format:     outputFormat,
		Clock:      timecalc.System,
	}
	if len(args) == 1 {
		opts.Arg = &args[0]
	}
	return run(cmd.Context(), opts, cmd.OutOrStdout())
}
