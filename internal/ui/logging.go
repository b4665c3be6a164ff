package ui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger keeps printf-style call sites on top of a masking slog handler.
type Logger struct {
	Debug bool

	log     *slog.Logger
	secrets *secretSet
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	secrets := &secretSet{}
	h := newMaskingHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), secrets)

	return &Logger{
		Debug:   debug,
		log:     slog.New(h),
		secrets: secrets,
	}
}

// Mask hides every later occurrence of secret in log output.
func (l *Logger) Mask(secret string) {
	l.secrets.add(secret)
}

func (l *Logger) Slog() *slog.Logger {
	return l.log
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.log.Debug(line(format, args...))
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.log.Info(line(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log.Error(line(format, args...))
}

func line(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
