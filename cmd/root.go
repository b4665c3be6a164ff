package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/brogergvhs/xkcdbot/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagEnvFile      string
	flagBaseURL      string
	flagUserAgent    string
	flagTimeout      int
)

var rootCmd = &cobra.Command{
	Use:           "xkcdbot",
	Short:         "xkcd chat bot and terminal client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "dotenv file to load (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override the comic site base URL")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds")
}

// Execute runs the command tree. Commands see a context that is cancelled
// on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := util.InterruptContext(context.Background())
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
