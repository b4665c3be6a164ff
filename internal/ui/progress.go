package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/xkcdbot/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *ProgressManager {
	p := mpb.New(
		mpb.WithWidth(48),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

func (pm *ProgressManager) Close() {
	pm.p.Wait()
}

// Register adds a bar counting units (comics or images) of total.
func (pm *ProgressManager) Register(prefix, unit string, total int) *ProgressHandle {
	h := &ProgressHandle{start: time.Now()}

	h.bar = pm.p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(prefix+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d "+unit, decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				if b := h.bytes.Load(); b > 0 {
					return " | " + util.Human(b)
				}
				return ""
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)

	return h
}

type ProgressHandle struct {
	bar   *mpb.Bar
	start time.Time
	bytes atomic.Int64
	final atomic.Bool
}

func (h *ProgressHandle) Increment() {
	if h.final.Load() {
		return
	}
	h.bar.Increment()
}

func (h *ProgressHandle) AddBytes(n int64) {
	h.bytes.Add(n)
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}
	h.bar.SetTotal(h.bar.Current(), true)
}
