package cmd

import (
	"time"

	"github.com/brogergvhs/xkcdbot/internal/config"
	"github.com/brogergvhs/xkcdbot/internal/discord"

	"github.com/spf13/cobra"
)

var (
	flagToken  string
	flagGuild  string
	flagStatus string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Discord bot. Token comes from TOKEN, the config or --token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{
			Token:   flagToken,
			GuildID: flagGuild,
			Status:  flagStatus,
		})
		if err != nil {
			return err
		}

		if err := a.cfg.RequireToken(); err != nil {
			return err
		}

		bot, err := discord.New(a.resolver, a.navigator(), a.log, discord.Options{
			Token:         a.cfg.Token,
			GuildID:       a.cfg.GuildID,
			Status:        a.cfg.Status,
			Version:       Version,
			SweepInterval: time.Minute,
		})
		if err != nil {
			return err
		}

		return bot.Run(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&flagToken, "token", "", "bot token (prefer the TOKEN environment variable)")
	runCmd.Flags().StringVar(&flagGuild, "guild", "", "register commands in this guild only (TEST_SERVER)")
	runCmd.Flags().StringVar(&flagStatus, "status", "", "\"Watching ...\" presence text")

	rootCmd.AddCommand(runCmd)
}
