package ui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const maskValue = "***"

// sensitiveKeys are attribute keys whose values are never written.
var sensitiveKeys = map[string]bool{
	"token":         true,
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"secret":        true,
	"api_key":       true,
}

type secretSet struct {
	mu     sync.RWMutex
	values []string
}

func (s *secretSet) add(v string) {
	if v == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

func (s *secretSet) mask(text string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.values {
		text = strings.ReplaceAll(text, v, maskValue)
	}
	return text
}

type maskingHandler struct {
	next    slog.Handler
	secrets *secretSet
}

func newMaskingHandler(next slog.Handler, secrets *secretSet) *maskingHandler {
	return &maskingHandler{next: next, secrets: secrets}
}

func (h *maskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.secrets.mask(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *maskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &maskingHandler{next: h.next.WithAttrs(masked), secrets: h.secrets}
}

func (h *maskingHandler) WithGroup(name string) slog.Handler {
	return &maskingHandler{next: h.next.WithGroup(name), secrets: h.secrets}
}

func (h *maskingHandler) maskAttr(a slog.Attr) slog.Attr {
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, maskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.secrets.mask(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		masked := make([]any, len(group))
		for i, g := range group {
			masked[i] = h.maskAttr(g)
		}
		return slog.Group(a.Key, masked...)
	default:
		return a
	}
}
