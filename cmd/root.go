// cmd/root.go
package cmd

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/localthomas/dudect-rs/dudect"
)

var (
	specimenName       string
	computationsPerRun int
	logLevel           string
	seed               int64
	metricsAddr        string
	configPath         string
)

var rootCmd = &cobra.Command{
	Use:   "dudect",
	Short: "Black-box constant-time execution tester",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure a specimen until timing leakage is found or the process is stopped",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := dudect.NewConfig()
		if configPath != "" {
			loaded, err := dudect.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("loading config: %v", err)
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("computations") {
			cfg.ComputationsPerRun = computationsPerRun
		}
		if cmd.Flags().Changed("log") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = metricsAddr
		}

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", cfg.LogLevel)
		}
		logrus.SetLevel(level)

		specimen, err := newSpecimen(specimenName)
		if err != nil {
			logrus.Fatal(err)
		}

		ctx := dudect.NewMeasurementContext(specimen, cfg.ComputationsPerRun)
		if cfg.Seed != 0 {
			ctx.SeedRNG(cfg.Seed)
		}

		if cfg.MetricsAddr != "" {
			recorder := dudect.NewPrometheusRecorder(prometheus.DefaultRegisterer)
			ctx.SetRecorder(recorder)
			go serveMetrics(cfg.MetricsAddr)
		}

		runID := uuid.New().String()
		logrus.WithField("run_id", runID).Infof("dudect: measuring %q, %d computations per run", specimenName, cfg.ComputationsPerRun)
		// Verdict lines go to stdout via fmt inside context.go's report, not
		// through logrus: they are the tool's data output, not a log.
		result := dudect.RunUntilLeakage(ctx)
		logrus.Infof("dudect: stopped with verdict %s", result)
	},
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.Errorf("metrics server stopped: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&specimenName, "specimen", "sleep-constant", "Specimen to measure (sleep-constant, sleep-leaky)")
	runCmd.Flags().IntVar(&computationsPerRun, "computations", 500, "Computations per measurement run (M)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed for group assignment (0 = time-based)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on (empty disables)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (flags override its fields)")

	rootCmd.AddCommand(runCmd)
}
