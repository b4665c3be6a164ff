package downloader

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/xkcdbot/internal/comic"
)

var reUnderscore = regexp.MustCompile(`_+`)

func sanitize(s string) string {
	s = strings.ToLower(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			clean = append(clean, r)
		case unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			clean = append(clean, '_')
		}
	}

	return strings.Trim(reUnderscore.ReplaceAllString(string(clean), "_"), "_")
}

// FileName is the on-disk name for a comic image, e.g. xkcd_0353_python.png.
func FileName(c comic.Comic) string {
	ext := path.Ext(c.ImageURL)
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}

	base := fmt.Sprintf("xkcd_%04d", c.Number)
	if t := sanitize(c.Title); t != "" {
		base += "_" + t
	}

	return base + strings.ToLower(ext)
}
