package core

import (
	"context"
	"log/slog"
)

// nopHandler discards every record; Enabled is false so callers skip formatting
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that drops everything
func NopLogger() *slog.Logger {
	return slog.New(nopHandler{})
}

// Logger returns l, or a nop logger when l is nil
func Logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return NopLogger()
	}
	return l
}
