package cmd

import (
	"fmt"

	"github.com/brogergvhs/xkcdbot/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename [old_label] [new_label]",
	Short: "Rename a config profile, prompting for missing labels",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var from, to string
		var err error

		switch len(args) {
		case 2:
			from, to = args[0], args[1]
		case 1:
			from = args[0]
		default:
			if from, err = pickConfig("Config to rename"); err != nil {
				return err
			}
		}

		if to == "" {
			if to, err = askLabel(fmt.Sprintf("New label for %q", from)); err != nil {
				return err
			}
		}

		if err := config.RenameConfig(from, to); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Renamed config %q to %q\n", from, to)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
