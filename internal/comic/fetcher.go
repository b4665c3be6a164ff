package comic

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/xkcdbot/internal/util"
)

const DefaultBaseURL = "https://xkcd.com"

type Fetcher struct {
	client  *http.Client
	baseURL string
	log     interface {
		Debugf(string, ...any)
	}
}

func NewFetcher(c *http.Client, baseURL string, log interface{ Debugf(string, ...any) }) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Fetcher{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// URLFor returns the page URL a locator points at.
func (f *Fetcher) URLFor(loc Locator) string {
	switch loc.Kind {
	case KindLatest:
		return f.baseURL + "/"
	case KindNumber:
		return f.baseURL + "/" + strconv.Itoa(loc.Number)
	default:
		return loc.URL
	}
}

// Fetch never fails. Fields that cannot be scraped keep their placeholder.
func (f *Fetcher) Fetch(ctx context.Context, loc Locator) Comic {
	target := f.URLFor(loc)

	doc, err := util.FetchDocument(ctx, f.client, target)
	if err != nil {
		f.debugf("Fetch %s failed: %v\n", target, err)
		return NotFound()
	}

	c := parsePage(doc, target)
	f.debugf("Fetched %s -> #%d %q\n", target, c.Number, c.Title)

	return c
}

func (f *Fetcher) debugf(format string, args ...any) {
	if f.log != nil {
		f.log.Debugf(format, args...)
	}
}

func parsePage(doc *goquery.Document, pageURL string) Comic {
	c := NotFound()

	if n, ok := permalinkNumber(doc); ok {
		c.Number = n
	}

	img := doc.Find("#comic img").First()
	if img.Length() == 0 {
		return c
	}

	if alt, ok := img.Attr("alt"); ok {
		c.Title = alt
	}
	if title, ok := img.Attr("title"); ok {
		c.AltText = title
	}
	if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
		c.ImageURL = imageURL(pageURL, strings.TrimSpace(src))
	}

	return c
}

func permalinkNumber(doc *goquery.Document) (int, bool) {
	meta := doc.Find(`meta[property="og:url"]`).First()
	if meta.Length() == 0 {
		// older layouts only had positional meta tags
		meta = doc.Find("meta").Eq(3)
	}

	content, ok := meta.Attr("content")
	if !ok {
		return 0, false
	}

	return NumberFromPermalink(content)
}

// NumberFromPermalink parses the second-to-last path segment of a
// permalink such as https://xkcd.com/2000/.
func NumberFromPermalink(permalink string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(permalink), "/")
	if len(parts) < 2 {
		return 0, false
	}

	n, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, false
	}

	return n, true
}

func imageURL(pageURL, src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}

	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}

	return base.ResolveReference(u).String()
}
