// Package cmd implements the corviu CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/config"
)

const version = "1.0.0"

var verbose bool

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "corviu",
	Short: "corviu — change intelligence client for AEC projects",
	Long: "corviu connects a project to the Corviu change-intelligence service:\n" +
		"live change digests over a push channel, ROI summaries, and team notifications.",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(changesCmd)
	rootCmd.AddCommand(roiCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig loads the config file and applies the logging level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if verbose || cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func configPathHint() string { return config.ConfigPath() }
