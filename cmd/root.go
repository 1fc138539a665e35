package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/os-sim/os-sim/tracing"
)

// version is reported in span resource attributes.
const version = "0.1.0"

// Global CLI flags shared by every subcommand.
var (
	logLevel    string // Log verbosity level
	seed        int64  // Master seed for workload and script generation
	otelEnabled bool   // Emit OpenTelemetry spans for this run
	otelFile    string // Span destination file; empty means stdout
)

// runID ties together the log lines and trace spans of one CLI invocation.
var runID = uuid.New().String()

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "os-sim",
	Short: "Deterministic simulator for CPU scheduling and memory allocation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if otelEnabled {
			if err := tracing.Init("os-sim", version, otelFile); err != nil {
				logrus.Fatalf("Tracing setup failed: %v", err)
			}
		}
	},
}

// startRunSpan opens the span covering one simulation run, tagged with the
// run identity. Without --otel the global provider is a no-op, so the span
// costs nothing. The caller ends it via tracing.EndSpan.
func startRunSpan(name string, attrs map[string]string) (context.Context, *tracing.Span) {
	ctx, span := tracing.StartSpan(context.Background(), name)
	span.WithAttributes(map[string]string{
		"run.id": runID,
		"seed":   strconv.FormatInt(seed, 10),
	})
	span.WithAttributes(attrs)
	return ctx, span
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the global flags shared by every subcommand
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for workload and script generation")
	rootCmd.PersistentFlags().BoolVar(&otelEnabled, "otel", false, "Emit an OpenTelemetry span per simulation run")
	rootCmd.PersistentFlags().StringVar(&otelFile, "otel-file", "", "Write spans to this file instead of stdout")
}
