package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharksforarms/hatchet/internal/config"
)

var (
	// cfg is the loaded configuration, initialized in PersistentPreRunE.
	cfg *config.Config

	// logger is the process-wide logger, initialized in PersistentPreRunE.
	logger *slog.Logger

	// configPath is the --config flag value.
	configPath string
)

// rootCmd is the top-level cobra command for hatchet.
var rootCmd = &cobra.Command{
	Use:   "hatchet",
	Short: "Network packet capture and crafting toolkit",
	Long: "hatchet parses network traffic into typed protocol layers and crafts,\n" +
		"rewrites and replays packets over live interfaces and pcap files.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = newLogger(cfg.Log)

		return nil
	},
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to configuration file (YAML)")

	rootCmd.AddCommand(captureCmd())
	rootCmd.AddCommand(rewriteCmd())
	rootCmd.AddCommand(pingCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds a slog.Logger per the logging configuration.
func newLogger(lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(lc.Level)}

	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
