// Package extensions provides optional lifecycle extensions for solo
// registries.
package extensions

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	solo "github.com/solo-fn/solo-go"
)

// LifecycleLogger logs singleton lifecycle transitions.
//
// Usage:
//
//	// Structured JSON logging
//	handler := slog.NewJSONHandler(os.Stdout, nil)
//	registry := solo.NewRegistry(host,
//	    solo.WithExtension(extensions.NewLifecycleLogger(handler)),
//	)
//
//	// Silent (for testing)
//	ext := extensions.NewLifecycleLogger(extensions.NewSilentHandler())
//
// Claims, releases and shutdowns log at INFO, discarded duplicates at WARN
// (they are expected during scope re-entry, never fatal), and operation
// timings at DEBUG.
type LifecycleLogger struct {
	solo.BaseExtension
	logger *slog.Logger
}

// NewLifecycleLogger creates a new lifecycle logging extension.
// logHandler: slog.Handler for logging (use slog.NewTextHandler for
// human-readable output, or any other slog.Handler)
func NewLifecycleLogger(logHandler slog.Handler) *LifecycleLogger {
	return &LifecycleLogger{
		BaseExtension: solo.NewBaseExtension("lifecycle-logger"),
		logger:        slog.New(logHandler),
	}
}

// Wrap times acquire and registration operations
func (e *LifecycleLogger) Wrap(ctx context.Context, next func() any, op *solo.Operation) any {
	start := time.Now()
	result := next()

	e.logger.Debug("operation completed",
		"operation", string(op.Kind),
		"type", typeName(op.Type),
		"duration", time.Since(start),
	)

	return result
}

// OnClaim logs a container winning singleton status
func (e *LifecycleLogger) OnClaim(op *solo.Operation, c solo.Container) {
	e.logger.Info("singleton claimed",
		"type", typeName(op.Type),
	)
}

// OnDuplicate logs a discarded candidate
func (e *LifecycleLogger) OnDuplicate(d *solo.Duplicate) {
	e.logger.Warn("duplicate candidate discarded",
		"type", typeName(d.Type),
		"after_shutdown", d.Winner == nil,
	)
}

// OnRelease logs the recognized holder being destroyed
func (e *LifecycleLogger) OnRelease(op *solo.Operation, c solo.Container) {
	e.logger.Info("singleton released",
		"type", typeName(op.Type),
	)
}

// OnShutdown logs the per-type latch flipping
func (e *LifecycleLogger) OnShutdown(t reflect.Type) {
	e.logger.Info("singleton shutting down",
		"type", typeName(t),
	)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// SilentHandler is a slog.Handler that discards all log output
// Useful for testing when you don't want log output
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false // Never enabled, discards everything
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil // Do nothing
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h // Return self, no state to modify
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h // Return self, no state to modify
}
