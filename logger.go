package wsi

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// live holds instances that follow the package logger.
var (
	liveMu sync.Mutex
	live   = make(map[*Instance]struct{})
)

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for wsi and all its sub-packages.
// By default, wsi produces no log output. Call SetLogger to enable logging.
//
// Instances created without WithLogger pick up the new logger immediately.
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by wsi:
//   - [slog.LevelDebug]: every forwarded call, proc lookups, ignored extension names
//   - [slog.LevelInfo]: instance creation and destruction
//   - [slog.LevelWarn]: allocation failures, frees of foreign blocks
//
// Example:
//
//	wsi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	defer liveMu.Unlock()
	for inst := range live {
		inst.propagateLogger(l)
	}
}

// Logger returns the current logger used by wsi.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by components that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes l to every component of inst that logs.
func (inst *Instance) propagateLogger(l *slog.Logger) {
	inst.logger.Store(l)
	for _, c := range []any{inst.router, inst.factory} {
		if ls, ok := c.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

func track(inst *Instance) {
	liveMu.Lock()
	live[inst] = struct{}{}
	liveMu.Unlock()
}

func untrack(inst *Instance) {
	liveMu.Lock()
	delete(live, inst)
	liveMu.Unlock()
}
