package comic

import (
	"context"
	"fmt"
)

const (
	NotFoundNumber   = -1
	NotFoundTitle    = "no comic title found"
	NotFoundAltText  = "no alt text found"
	NotFoundImageURL = "https://imgs.xkcd.com/comics/not_available.png"
)

// Comic is one xkcd installment as scraped from its page.
//
// Title is read from the image alt attribute and AltText from the image
// title attribute. The swap is kept for compatibility with existing bots.
type Comic struct {
	Number   int
	Title    string
	AltText  string
	ImageURL string
}

// NotFound returns a Comic with every field set to its placeholder.
func NotFound() Comic {
	return Comic{
		Number:   NotFoundNumber,
		Title:    NotFoundTitle,
		AltText:  NotFoundAltText,
		ImageURL: NotFoundImageURL,
	}
}

func (c Comic) Found() bool {
	return c.Number != NotFoundNumber
}

func (c Comic) Footer() string {
	return fmt.Sprintf("xkcd #%d", c.Number)
}

type Kind int

const (
	KindURL Kind = iota
	KindLatest
	KindNumber
)

// Locator points at a single comic page.
type Locator struct {
	Kind   Kind
	Number int
	URL    string
}

func Latest() Locator {
	return Locator{Kind: KindLatest}
}

func ByNumber(n int) Locator {
	return Locator{Kind: KindNumber, Number: n}
}

func ByURL(u string) Locator {
	return Locator{Kind: KindURL, URL: u}
}

func (l Locator) String() string {
	switch l.Kind {
	case KindLatest:
		return "latest"
	case KindNumber:
		return fmt.Sprintf("#%d", l.Number)
	default:
		return l.URL
	}
}

// Source is anything that can resolve a Locator into a Comic.
type Source interface {
	Fetch(ctx context.Context, loc Locator) Comic
}

// RandomNumber picks a number in [1, latest) using a fresh fetch of the
// latest comic. When latest cannot be determined it returns NotFoundNumber.
func RandomNumber(ctx context.Context, src Source, intn func(int) int) int {
	latest := src.Fetch(ctx, Latest())
	if latest.Number <= 1 {
		return NotFoundNumber
	}
	return 1 + intn(latest.Number-1)
}
