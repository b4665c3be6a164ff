// Package navigator drives interactive comic messages: each message keeps
// its own current comic number and is re-rendered from scratch on every
// Previous, Random or Next press until its controls expire.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/brogergvhs/xkcdbot/internal/comic"
)

var ErrExpired = errors.New("navigation controls expired")

const DefaultTTL = 15 * time.Minute

// Target is a rendered message the navigator can redraw in place.
type Target interface {
	ID() string
	Render(ctx context.Context, v View) error
}

// Detacher is implemented by targets that can strip their controls once
// the navigator stops listening.
type Detacher interface {
	Detach(ctx context.Context) error
}

type Options struct {
	TTL   time.Duration
	Links Links
	// Intn returns a value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
	Now  func() time.Time
	Log  interface {
		Debugf(string, ...any)
	}
}

type Navigator struct {
	src  comic.Source
	reg  *Registry
	opts Options
}

func New(src comic.Source, opts Options) *Navigator {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Links == (Links{}) {
		opts.Links = DefaultLinks
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Navigator{
		src:  src,
		reg:  NewRegistry(),
		opts: opts,
	}
}

// Handle is the caller's grip on one open navigator.
type Handle struct {
	id  string
	nav *Navigator
}

func (h *Handle) ID() string {
	return h.id
}

func (h *Handle) Press(ctx context.Context, a Action) error {
	return h.nav.Press(ctx, h.id, a)
}

// Current reports the displayed comic number, or false once expired.
func (h *Handle) Current() (int, bool) {
	return h.nav.Current(h.id)
}

func (h *Handle) Close(ctx context.Context) {
	h.nav.close(ctx, h.id)
}

// Open renders initial on target with a fresh set of controls and starts
// tracking presses for it. Only this first render uses initial; every
// later render re-fetches. Opening an id that is already tracked retires
// the previous navigator first.
func (n *Navigator) Open(ctx context.Context, initial comic.Comic, t Target) (*Handle, error) {
	id := t.ID()
	if old, ok := n.reg.Remove(id); ok {
		n.retire(ctx, old)
	}

	st := &State{current: initial.Number, target: t}

	st.mu.Lock()
	defer st.mu.Unlock()

	n.reg.Put(id, st, n.opts.Now().Add(n.opts.TTL))
	if err := n.render(ctx, st, initial); err != nil {
		n.reg.Remove(id)
		return nil, fmt.Errorf("render %s: %w", id, err)
	}

	n.debugf("Navigator opened on %s at #%d\n", id, initial.Number)

	return &Handle{id: id, nav: n}, nil
}

// Press applies one navigation event to the message identified by id.
// Presses on the same message are serialized.
func (n *Navigator) Press(ctx context.Context, id string, a Action) error {
	st, ok := n.reg.Get(id, n.opts.Now())
	if !ok {
		return ErrExpired
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return ErrExpired
	}

	switch a {
	case Previous:
		st.current--
	case Next:
		st.current++
	case Random:
		st.current = n.randomNumber(ctx)
	default:
		return fmt.Errorf("unknown action %d", int(a))
	}

	n.reg.Touch(id, n.opts.Now().Add(n.opts.TTL))
	n.debugf("Navigator %s: %s -> #%d\n", id, a, st.current)

	c := n.src.Fetch(ctx, comic.ByNumber(st.current))
	return n.render(ctx, st, c)
}

func (n *Navigator) Current(id string) (int, bool) {
	st, ok := n.reg.Get(id, n.opts.Now())
	if !ok {
		return 0, false
	}
	return st.Current(), true
}

// Expire retires every navigator past its deadline and returns how many
// were retired.
func (n *Navigator) Expire(ctx context.Context) int {
	expired := n.reg.Sweep(n.opts.Now())
	for _, st := range expired {
		n.retire(ctx, st)
	}
	return len(expired)
}

// Run sweeps expired navigators every interval until ctx is done.
func (n *Navigator) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if c := n.Expire(ctx); c > 0 {
				n.debugf("Expired %d navigators\n", c)
			}
		}
	}
}

func (n *Navigator) Len() int {
	return n.reg.Len()
}

func (n *Navigator) close(ctx context.Context, id string) {
	if st, ok := n.reg.Remove(id); ok {
		n.retire(ctx, st)
	}
}

func (n *Navigator) retire(ctx context.Context, st *State) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return
	}
	st.closed = true

	if d, ok := st.target.(Detacher); ok {
		if err := d.Detach(ctx); err != nil {
			n.debugf("Detach %s failed: %v\n", st.target.ID(), err)
		}
	}
}

func (n *Navigator) randomNumber(ctx context.Context) int {
	return comic.RandomNumber(ctx, n.src, n.opts.Intn)
}

func (n *Navigator) render(ctx context.Context, st *State, c comic.Comic) error {
	return st.target.Render(ctx, View{
		Comic:    c,
		Controls: n.opts.Links.Controls(st.current),
	})
}

func (n *Navigator) debugf(format string, args ...any) {
	if n.opts.Log != nil {
		n.opts.Log.Debugf(format, args...)
	}
}
