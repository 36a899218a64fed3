// cmd/root.go
package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnetsim/qnetsim/sim"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string
	serveAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "qnetsim",
	Short: "Discrete-event simulator for finite-capacity, multi-source, multi-server queueing networks",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to completion and print its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		runID := newRunID()
		logrus.Infof("[run %s] starting simulation: %d sources, %d servers, buffer=%d, seed=%d",
			runID, len(cfg.Sources), len(cfg.Servers), cfg.BufferCapacity, cfg.Seed)

		k, err := sim.NewKernel(cfg)
		if err != nil {
			logrus.Fatalf("building kernel: %v", err)
		}

		if metricsAddr != "" {
			srv := startMetricsEndpoint(metricsAddr)
			defer srv.Close()
		}

		k.Run()

		serverIDs := make([]int, len(cfg.Servers))
		for i, sc := range cfg.Servers {
			serverIDs[i] = sc.ID
		}
		if metricsAddr != "" {
			snapshotMetrics(k, serverIDs)
		}

		k.Metrics().Print(k.CurrentTime(), serverIDs)
		logrus.Infof("[run %s] simulation complete at t=%.4f", runID, k.CurrentTime())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a simulation and expose its live state over HTTP and a websocket timeline",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		runID := newRunID()
		k, err := sim.NewKernel(cfg)
		if err != nil {
			logrus.Fatalf("building kernel: %v", err)
		}

		timeline := newTimelineObserver()
		k.AddObserver(timeline)

		qs := newQueryServer(k)
		mux := http.NewServeMux()
		mux.Handle("/ws", http.HandlerFunc(timeline.HandleWebSocket))
		mux.Handle("/", qs)

		if metricsAddr != "" {
			srv := startMetricsEndpoint(metricsAddr)
			defer srv.Close()
		}

		go k.Run()

		logrus.Infof("[run %s] serving live simulation state on %s", runID, serveAddr)
		if err := http.ListenAndServe(serveAddr, mux); err != nil {
			logrus.Fatalf("serve: %v", err)
		}
	},
}

// Execute runs the root command, exiting the process with a nonzero
// status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the simulation's YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus /metrics on (empty disables)")

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to serve the HTTP query API and websocket timeline on")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
