// Package resolve turns user-facing arguments (a number, a name, a range,
// "latest" or "random") into fetched comics.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/brogergvhs/xkcdbot/internal/comic"
)

const DefaultMaxRange = 10

var (
	ErrRangeTooLarge = errors.New("range too large")
	ErrReversedRange = errors.New("range is reversed")
)

// NameIndex is the subset of the name index the resolver needs.
type NameIndex interface {
	Lookup(name string) (int, bool)
	Rebuild(ctx context.Context) error
	Len() int
}

type Options struct {
	// MaxRange is the largest allowed |last-first|.
	MaxRange int
	// Workers bounds concurrent fetches for Range. 1 fetches sequentially.
	Workers int
	Intn    func(n int) int
}

type Resolver struct {
	src   comic.Source
	names NameIndex
	opts  Options
}

func New(src comic.Source, names NameIndex, opts Options) *Resolver {
	if opts.MaxRange <= 0 {
		opts.MaxRange = DefaultMaxRange
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}

	return &Resolver{src: src, names: names, opts: opts}
}

func (r *Resolver) MaxRange() int {
	return r.opts.MaxRange
}

func (r *Resolver) Latest(ctx context.Context) comic.Comic {
	return r.src.Fetch(ctx, comic.Latest())
}

func (r *Resolver) Get(ctx context.Context, n int) comic.Comic {
	return r.src.Fetch(ctx, comic.ByNumber(n))
}

func (r *Resolver) Random(ctx context.Context) comic.Comic {
	return r.Get(ctx, comic.RandomNumber(ctx, r.src, r.opts.Intn))
}

// LookupNumber reports the indexed number for name without fetching.
func (r *Resolver) LookupNumber(name string) (int, bool) {
	return r.names.Lookup(strings.ToLower(name))
}

// Lookup fetches the comic titled name. Unknown names fall back to the
// not-found locator, which renders as the placeholder comic.
func (r *Resolver) Lookup(ctx context.Context, name string) comic.Comic {
	n, ok := r.LookupNumber(name)
	if !ok {
		n = comic.NotFoundNumber
	}
	return r.Get(ctx, n)
}

// CheckRange validates a range request without fetching anything.
func (r *Resolver) CheckRange(first, last int) error {
	if span(first, last) > uint64(r.opts.MaxRange) {
		return fmt.Errorf("%w: cannot get more than %d comics at once", ErrRangeTooLarge, r.opts.MaxRange)
	}
	if first > last {
		return fmt.Errorf("%w: %d is after %d", ErrReversedRange, first, last)
	}
	return nil
}

// Range fetches every comic in [first, last]. Results are ordered first
// to last regardless of how many workers run.
func (r *Resolver) Range(ctx context.Context, first, last int) ([]comic.Comic, error) {
	if err := r.CheckRange(first, last); err != nil {
		return nil, err
	}

	out := make([]comic.Comic, last-first+1)

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)

	for i := range out {
		g.Go(func() error {
			out[i] = r.src.Fetch(ctx, comic.ByNumber(first+i))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateIndex rebuilds the name index and reports its new size.
func (r *Resolver) UpdateIndex(ctx context.Context) (int, error) {
	if err := r.names.Rebuild(ctx); err != nil {
		return r.names.Len(), fmt.Errorf("index update failed: %w", err)
	}
	return r.names.Len(), nil
}

// span is |last-first| computed without overflow for any pair of ints.
func span(first, last int) uint64 {
	if first > last {
		first, last = last, first
	}
	return uint64(last) - uint64(first)
}
