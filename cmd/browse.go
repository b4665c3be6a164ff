package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brogergvhs/xkcdbot/internal/config"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
	"github.com/brogergvhs/xkcdbot/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [num]",
	Short: "Browse comics interactively, starting at num or the latest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		start := a.resolver.Latest(ctx)
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid comic number %q", args[0])
			}
			start = a.resolver.Get(ctx, n)
		}

		nav := a.navigator()
		h, err := nav.Open(ctx, start, ui.NewTerminalTarget(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		defer h.Close(ctx)

		actions := []navigator.Action{navigator.Previous, navigator.Random, navigator.Next}
		items := []string{"Previous", "Random", "Next", "Quit"}

		for {
			prompt := promptui.Select{
				Label: "Navigate",
				Items: items,
			}

			idx, _, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("selection cancelled: %w", err)
			}
			if idx == len(actions) {
				return nil
			}

			if err := h.Press(ctx, actions[idx]); err != nil {
				if errors.Is(err, navigator.ErrExpired) {
					ui.PrintError(cmd.ErrOrStderr(), "Navigation timed out. Run browse again.")
					return nil
				}
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
