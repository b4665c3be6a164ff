package downloader

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/brogergvhs/xkcdbot/internal/comic"
)

// Progress receives per-image notifications. ProgressHandle in ui satisfies it.
type Progress interface {
	Increment()
	AddBytes(n int64)
}

type Downloader struct {
	client    *http.Client
	outputDir string
	log       interface{ Debugf(string, ...any) }
}

func New(c *http.Client, outputDir string, log interface{ Debugf(string, ...any) }) *Downloader {
	return &Downloader{
		client:    c,
		outputDir: outputDir,
		log:       log,
	}
}

// Save downloads the images of comics into the output folder. Placeholder
// comics are skipped. Returned paths are sorted.
func (d *Downloader) Save(ctx context.Context, comics []comic.Comic, maxParallel int, ph Progress) ([]string, int64, error) {
	if err := os.MkdirAll(d.outputDir, 0755); err != nil {
		return nil, 0, err
	}

	if maxParallel < 1 {
		maxParallel = 1
	}

	var (
		mu    sync.Mutex
		files []string
		bytes int64
		errs  []error
	)

	jobs := make(chan comic.Comic)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for c := range jobs {
			out := filepath.Join(d.outputDir, FileName(c))

			n, err := d.download(ctx, c.ImageURL, out, ph)

			mu.Lock()
			if err != nil {
				errs = append(errs, fmt.Errorf("#%d: %w", c.Number, err))
				_ = os.Remove(out)
			} else {
				files = append(files, out)
				bytes += n
			}
			mu.Unlock()

			if ph != nil {
				ph.Increment()
			}
		}
	}

	wg.Add(maxParallel)
	for w := 0; w < maxParallel; w++ {
		go worker()
	}

feed:
	for _, c := range comics {
		if !c.Found() || c.ImageURL == comic.NotFoundImageURL {
			if ph != nil {
				ph.Increment()
			}
			continue
		}

		select {
		case <-ctx.Done():
			break feed
		case jobs <- c:
		}
	}

	close(jobs)
	wg.Wait()
	sort.Strings(files)

	if err := ctx.Err(); err != nil {
		return files, bytes, err
	}
	if len(errs) > 0 {
		return files, bytes, fmt.Errorf("failed %d/%d images: %w", len(errs), len(comics), errs[0])
	}

	return files, bytes, nil
}

func (d *Downloader) download(ctx context.Context, u, output string, ph Progress) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	if d.log != nil {
		d.log.Debugf("Downloading %s -> %s\n", u, output)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return 0, fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}

	var progress func(int64)
	if ph != nil {
		progress = ph.AddBytes
	}

	written, err := copyWithProgress(f, resp.Body, progress)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return written, err
}
