// Package xkcdtest serves a small fake xkcd site for tests.
package xkcdtest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Page is one comic served by the fake site.
type Page struct {
	Number int
	Title  string // rendered as the image alt attribute
	Hover  string // rendered as the image title attribute
	Src    string
}

type override struct {
	code int
	body string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	pages     map[int]Page
	overrides map[string]override
	hits      map[string]int
}

func NewServer(pages ...Page) *Server {
	s := &Server{
		pages:     map[int]Page{},
		overrides: map[string]override{},
		hits:      map[string]int{},
	}
	for _, p := range pages {
		s.pages[p.Number] = p
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle replaces whatever the server would return for path.
func (s *Server) Handle(path string, code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = override{code: code, body: body}
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	ov, hasOverride := s.overrides[r.URL.Path]
	pages := make(map[int]Page, len(s.pages))
	for k, v := range s.pages {
		pages[k] = v
	}
	s.mu.Unlock()

	if hasOverride {
		w.WriteHeader(ov.code)
		_, _ = fmt.Fprint(w, ov.body)
		return
	}

	switch {
	case r.URL.Path == "/":
		latest, ok := latestPage(pages)
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, PageHTML(latest))

	case r.URL.Path == "/archive/":
		_, _ = fmt.Fprint(w, ArchiveHTML(pages))

	default:
		n, err := strconv.Atoi(strings.Trim(r.URL.Path, "/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		p, ok := pages[n]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, PageHTML(p))
	}
}

func latestPage(pages map[int]Page) (Page, bool) {
	var (
		best  Page
		found bool
	)
	for _, p := range pages {
		if !found || p.Number > best.Number {
			best, found = p, true
		}
	}
	return best, found
}

// PageHTML renders a comic page shaped like the real site.
func PageHTML(p Page) string {
	src := p.Src
	if src == "" {
		src = fmt.Sprintf("//imgs.xkcd.com/comics/comic_%d.png", p.Number)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="X-UA-Compatible" content="IE=edge">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta property="og:site_name" content="xkcd">
<meta property="og:title" content="%[2]s">
<meta property="og:url" content="https://xkcd.com/%[1]d/">
<title>xkcd: %[2]s</title>
</head>
<body>
<div id="ctitle">%[2]s</div>
<div id="comic">
<img src="%[4]s" title="%[3]s" alt="%[2]s" style="image-orientation:none">
</div>
Permanent link to this comic: <a href="https://xkcd.com/%[1]d/">https://xkcd.com/%[1]d/</a>
</body>
</html>`, p.Number, html.EscapeString(p.Title), html.EscapeString(p.Hover), html.EscapeString(src))
}

// ArchiveHTML renders the archive listing, including a few links that do
// not point at comics.
func ArchiveHTML(pages map[int]Page) string {
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(nums)))

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body>
<ul><li><a href="/archive">Archive</a></li>
<li><a href="https://what-if.xkcd.com/">What If?</a></li>
<li><a href="/about">About</a></li></ul>
<div id="middleContainer" class="box">
<h1>Comics:</h1>
`)
	for _, n := range nums {
		fmt.Fprintf(&b, "<a href=\"/%d/\" title=\"2020-1-1\">%s</a><br/>\n", n, html.EscapeString(pages[n].Title))
	}
	b.WriteString(`</div></body></html>`)

	return b.String()
}
