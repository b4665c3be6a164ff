package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/xkcdbot/internal/config"
	"github.com/brogergvhs/xkcdbot/internal/ui"

	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the latest comic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		ui.PrintComic(cmd.OutOrStdout(), a.resolver.Latest(cmd.Context()))
		return nil
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random comic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		ui.PrintComic(cmd.OutOrStdout(), a.resolver.Random(cmd.Context()))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <num>",
	Short: "Print a comic by number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid comic number %q", args[0])
		}

		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		ui.PrintComic(cmd.OutOrStdout(), a.resolver.Get(cmd.Context(), n))
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Print a comic by its title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := a.resolver.UpdateIndex(ctx); err != nil {
			a.log.Errorf("%v\n", err)
		}

		name := strings.Join(args, " ")
		if _, ok := a.resolver.LookupNumber(name); !ok {
			a.log.Debugf("No comic titled %q in the index\n", name)
		}

		ui.PrintComic(cmd.OutOrStdout(), a.resolver.Lookup(ctx, name))
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the title index from the archive and report its size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Options{})
		if err != nil {
			return err
		}

		n, err := a.resolver.UpdateIndex(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d comics\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(latestCmd, randomCmd, getCmd, lookupCmd, indexCmd)
}
