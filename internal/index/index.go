// Package index keeps a best-effort mapping from comic title to number,
// scraped from the archive page.
package index

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"

	"github.com/brogergvhs/xkcdbot/internal/util"
)

type Names struct {
	client     *http.Client
	archiveURL string
	log        interface{ Debugf(string, ...any) }

	snapshot atomic.Pointer[map[string]int]
	flight   singleflight.Group
}

func New(c *http.Client, baseURL string, log interface{ Debugf(string, ...any) }) *Names {
	n := &Names{
		client:     c,
		archiveURL: strings.TrimRight(baseURL, "/") + "/archive/",
		log:        log,
	}

	empty := map[string]int{}
	n.snapshot.Store(&empty)

	return n
}

// Rebuild replaces the whole index with the current archive listing.
// On failure the previous index stays in place. Concurrent callers share a
// single archive fetch. The shared fetch is not tied to any one caller's
// cancellation and is bounded by the client timeout; a cancelled caller
// stops waiting without failing the others.
func (n *Names) Rebuild(ctx context.Context) error {
	shared := context.WithoutCancel(ctx)

	ch := n.flight.DoChan("rebuild", func() (any, error) {
		doc, err := util.FetchDocument(shared, n.client, n.archiveURL)
		if err != nil {
			return nil, err
		}

		next := parseArchive(doc)
		n.snapshot.Store(&next)

		if n.log != nil {
			n.log.Debugf("Name index rebuilt: %d titles\n", len(next))
		}

		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// Lookup is case-insensitive. A miss reports ok=false.
func (n *Names) Lookup(name string) (int, bool) {
	m := *n.snapshot.Load()
	num, ok := m[normalize(name)]

	return num, ok
}

func (n *Names) Len() int {
	return len(*n.snapshot.Load())
}

func parseArchive(doc *goquery.Document) map[string]int {
	out := map[string]int{}

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")

		num, ok := numberFromHref(href)
		if !ok {
			return
		}

		out[normalize(a.Text())] = num
	})

	return out
}

// numberFromHref reads the first path segment of links like "/2000/".
func numberFromHref(href string) (int, bool) {
	parts := strings.Split(href, "/")
	if len(parts) < 2 {
		return 0, false
	}

	num, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return num, true
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
