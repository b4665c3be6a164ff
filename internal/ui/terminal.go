package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/brogergvhs/xkcdbot/internal/comic"
	"github.com/brogergvhs/xkcdbot/internal/navigator"
)

var (
	titleColor  = color.New(color.Bold, color.FgCyan)
	footerColor = color.New(color.Faint)
	linkColor   = color.New(color.FgBlue, color.Underline)
	errorColor  = color.New(color.FgRed)
)

// PrintComic writes c the way a chat embed would show it.
func PrintComic(w io.Writer, c comic.Comic) {
	_, _ = titleColor.Fprintln(w, c.Title)
	_, _ = fmt.Fprintln(w, c.AltText)
	_, _ = fmt.Fprintln(w, c.ImageURL)
	_, _ = footerColor.Fprintln(w, c.Footer())
}

func PrintError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintln(w, msg)
}

// TerminalTarget renders navigator views to a terminal.
type TerminalTarget struct {
	id  string
	out io.Writer
}

func NewTerminalTarget(out io.Writer) *TerminalTarget {
	return &TerminalTarget{
		id:  "term-" + uuid.NewString(),
		out: out,
	}
}

func (t *TerminalTarget) ID() string {
	return t.id
}

func (t *TerminalTarget) Render(_ context.Context, v navigator.View) error {
	_, _ = fmt.Fprintln(t.out)
	PrintComic(t.out, v.Comic)

	for _, c := range v.Controls {
		if c.IsLink() {
			_, _ = fmt.Fprintf(t.out, "%s: %s\n", c.Label, linkColor.Sprint(c.URL))
		}
	}

	return nil
}

func (t *TerminalTarget) Detach(context.Context) error {
	_, _ = footerColor.Fprintln(t.out, "(navigation closed)")
	return nil
}
