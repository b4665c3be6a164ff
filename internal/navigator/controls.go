package navigator

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/xkcdbot/internal/comic"
)

type Action int

const (
	Previous Action = iota + 1
	Random
	Next
)

var actionIDs = map[Action]string{
	Previous: "prev",
	Random:   "random",
	Next:     "next",
}

// String is the stable identifier used in control ids.
func (a Action) String() string {
	if s, ok := actionIDs[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

func ParseAction(s string) (Action, bool) {
	for a, id := range actionIDs {
		if id == s {
			return a, true
		}
	}
	return 0, false
}

// Control is one button under a rendered comic. Link controls carry a URL
// and no action.
type Control struct {
	Label  string
	Action Action
	URL    string
}

func (c Control) IsLink() bool {
	return c.URL != ""
}

// View is everything a target needs to draw one navigator state.
type View struct {
	Comic    comic.Comic
	Controls []Control
}

type Links struct {
	ComicBase   string
	ExplainBase string
}

var DefaultLinks = Links{
	ComicBase:   "https://xkcd.com",
	ExplainBase: "https://www.explainxkcd.com",
}

// Controls builds the full control set for comic n. Link controls cannot
// be edited once attached, so they are rebuilt for every render.
func (l Links) Controls(n int) []Control {
	return []Control{
		{Label: "Previous", Action: Previous},
		{Label: "\U0001F3B2", Action: Random},
		{Label: "Next", Action: Next},
		{Label: "xkcd.com", URL: fmt.Sprintf("%s/%d", strings.TrimRight(l.ComicBase, "/"), n)},
		{Label: "explain", URL: fmt.Sprintf("%s/%d", strings.TrimRight(l.ExplainBase, "/"), n)},
	}
}
