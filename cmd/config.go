package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/xkcdbot/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective config or manage config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print()
		return nil
	},
}

// confirm asks a yes/no question. Anything but an explicit yes is a no.
func confirm(label string) bool {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	resp, err := p.Run()
	if err != nil {
		return false
	}

	resp = strings.ToLower(strings.TrimSpace(resp))
	return resp == "y" || resp == "yes"
}

func askLabel(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("label cannot be empty")
			}
			if strings.ContainsAny(s, `/\`) {
				return errors.New("label cannot contain path separators")
			}
			return nil
		},
	}

	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled")
	}
	return strings.TrimSpace(v), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
