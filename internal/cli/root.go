// Package cli defines the darkroom command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/darkroom-dev/darkroom/internal/app"
	"github.com/darkroom-dev/darkroom/internal/config"
)

var (
	debugLogs  bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "darkroom",
	Short: "Develop photos with film presets via the Filmlab Online API",
	Long: `Unofficial command line application for the Filmlab Online API. It uploads
images, applies film emulation presets with optional adjustment and effect
settings, and downloads the rendered results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugLogs {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command. It is called once from main.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "darkroom: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config file path (optional)")
}

// newApp loads the configuration and assembles the application for a
// command invocation.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, slog.Default(), cmd.OutOrStdout())
}
