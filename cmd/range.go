package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/config"
	"github.com/brogergvhs/xkcdbot/internal/downloader"
	"github.com/brogergvhs/xkcdbot/internal/resolve"
	"github.com/brogergvhs/xkcdbot/internal/ui"
	"github.com/brogergvhs/xkcdbot/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagSaveDir string
	flagCBZ     string
	flagQuiet   bool
)

var rangeCmd = &cobra.Command{
	Use:   "range <first> <last> | range <first-last>",
	Short: "Print a range of comics, optionally saving their images",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRange,
}

func init() {
	rangeCmd.Flags().StringVar(&flagSaveDir, "save", "", "download the comic images into this folder")
	rangeCmd.Flags().StringVar(&flagCBZ, "cbz", "", "bundle the downloaded images into this CBZ file")
	rangeCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "do not print the comics, only the summary")

	rootCmd.AddCommand(rangeCmd)
}

func rangeArgs(args []string) (int, int, error) {
	if len(args) == 1 {
		return resolve.ParseRange(args[0])
	}

	first, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first comic %q", args[0])
	}
	last, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid last comic %q", args[1])
	}
	return first, last, nil
}

// countingSource ticks a progress bar for every fetch it forwards.
type countingSource struct {
	comic.Source
	ph    *ui.ProgressHandle
	stats *ui.Stats
}

func (s countingSource) Fetch(ctx context.Context, loc comic.Locator) comic.Comic {
	c := s.Source.Fetch(ctx, loc)

	s.stats.TotalComics.Add(1)
	if !c.Found() {
		s.stats.Placeholders.Add(1)
	}
	s.ph.Increment()

	return c
}

func runRange(cmd *cobra.Command, args []string) error {
	first, last, err := rangeArgs(args)
	if err != nil {
		return err
	}

	a, err := newApp(config.Options{})
	if err != nil {
		return err
	}

	if err := a.resolver.CheckRange(first, last); err != nil {
		if errors.Is(err, resolve.ErrRangeTooLarge) {
			return fmt.Errorf("cannot get more than %d comics at once", a.resolver.MaxRange())
		}
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	start := time.Now()
	stats := &ui.Stats{}

	pm := ui.NewProgressManager(cmd.ErrOrStderr())
	fetchBar := pm.Register("Fetching", "comics", last-first+1)

	comics, err := a.resolverFor(countingSource{Source: a.fetcher, ph: fetchBar, stats: stats}).Range(ctx, first, last)
	fetchBar.MarkDone()
	if err != nil {
		pm.Close()
		return err
	}

	var files []string
	if flagSaveDir != "" || flagCBZ != "" {
		files, err = saveImages(ctx, a, pm, comics, stats)
	}
	pm.Close()
	if err != nil {
		return err
	}

	if !flagQuiet {
		for _, c := range comics {
			ui.PrintComic(out, c)
			fmt.Fprintln(out)
		}
	}

	if flagCBZ != "" {
		if len(files) == 0 {
			return fmt.Errorf("no images to bundle into %s", flagCBZ)
		}
		if err := util.CreateCBZ(files, flagCBZ); err != nil {
			return err
		}
		if flagSaveDir == "" {
			cleanupTemp(files)
		}
		fmt.Fprintf(out, "CBZ:      %s\n", flagCBZ)
	}

	printSummary(out, stats, len(files), start)
	return nil
}

func saveImages(ctx context.Context, a *app, pm *ui.ProgressManager, comics []comic.Comic, stats *ui.Stats) ([]string, error) {
	dir := flagSaveDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "xkcdbot-*")
		if err != nil {
			return nil, err
		}
		dir = tmp
	}

	bar := pm.Register("Saving  ", "images", len(comics))
	dl := downloader.New(a.client, dir, a.log)

	files, bytes, err := dl.Save(ctx, comics, a.cfg.RangeWorkers, bar)
	bar.MarkDone()
	stats.TotalBytes.Add(bytes)

	if ctx.Err() != nil {
		cleanupTemp(files)
		util.RemoveIfEmpty(dir)
		return nil, fmt.Errorf("interrupted: %w", ctx.Err())
	}
	if err != nil {
		a.log.Errorf("%v\n", err)
	}

	return files, nil
}

// cleanupTemp removes downloaded files and their folder once it is empty.
func cleanupTemp(files []string) {
	util.RemoveFiles(files)
	if len(files) > 0 {
		util.RemoveIfEmpty(filepath.Dir(files[0]))
	}
}

func printSummary(w io.Writer, stats *ui.Stats, images int, start time.Time) {
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "Comics:   %d\n", stats.TotalComics.Load())
	if p := stats.Placeholders.Load(); p > 0 {
		fmt.Fprintf(w, "Missing:  %d\n", p)
	}
	if images > 0 {
		fmt.Fprintf(w, "Images:   %d\n", images)
		fmt.Fprintf(w, "Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	}
	fmt.Fprintf(w, "Time:     %s\n", time.Since(start).Round(time.Millisecond))
}
