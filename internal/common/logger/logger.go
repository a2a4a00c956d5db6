// Package logger emits structured JSON logs. Every entry carries the
// service name, an action tag and a human message so log pipelines can
// aggregate by action.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// Init installs the JSON handler on slog's default logger and records
// the service name attached to every entry.
func Init(name string) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(h).With(slog.String("service", name)))
}

func Debug(action, message string, attrs ...slog.Attr) {
	logAttrs(slog.LevelDebug, action, message, attrs...)
}

func Info(action, message string, attrs ...slog.Attr) {
	logAttrs(slog.LevelInfo, action, message, attrs...)
}

func Warn(action, message string, attrs ...slog.Attr) {
	logAttrs(slog.LevelWarn, action, message, attrs...)
}

func Error(action, message string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logAttrs(slog.LevelError, action, message, attrs...)
}

func logAttrs(level slog.Level, action, message string, attrs ...slog.Attr) {
	l := slog.Default()
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.String("action", action))
	all = append(all, attrs...)
	l.LogAttrs(ctx, level, message, all...)
}

// Driver returns the attr used to tag entries with the driver involved.
func Driver(id string) slog.Attr {
	return slog.String("driver_id", id)
}

// User returns the attr used to tag entries with the acting identity.
func User(id string) slog.Attr {
	return slog.String("user_id", id)
}
