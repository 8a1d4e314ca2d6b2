// internal/common/errors/handler.go
package errors

import (
	"context"
	"fmt"
	"time"

	"visa-bot/internal/models"
)

// ErrorHandler isolates failures of a single inbound event: it logs them,
// counts them and reports a diagnostic to the admin. It never returns errors.
type ErrorHandler struct {
	logger   Logger
	reporter Reporter
	mirror   Mirror
	adminID  models.Identity
	counter  func(code ErrorCode)
	timeout  time.Duration
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Reporter delivers the admin diagnostic over the chat transport.
type Reporter interface {
	SendText(ctx context.Context, to models.Identity, text string, kb *models.Keyboard) error
}

// Mirror is an optional out-of-band alert channel.
type Mirror interface {
	Alert(ctx context.Context, subject, body string) error
}

type ErrorHandlerOption func(*ErrorHandler)

// WithMirror additionally forwards diagnostics to an out-of-band channel.
func WithMirror(m Mirror) ErrorHandlerOption {
	return func(h *ErrorHandler) { h.mirror = m }
}

// WithCounter registers a callback invoked once per handled error.
func WithCounter(fn func(code ErrorCode)) ErrorHandlerOption {
	return func(h *ErrorHandler) { h.counter = fn }
}

func NewErrorHandler(logger Logger, reporter Reporter, adminID models.Identity, opts ...ErrorHandlerOption) *ErrorHandler {
	h := &ErrorHandler{
		logger:   logger,
		reporter: reporter,
		adminID:  adminID,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleEventError handles any error that escaped an event handler.
func (h *ErrorHandler) HandleEventError(ctx context.Context, ev models.Event, err error) {
	if err == nil {
		return
	}
	stdErr := Normalize(err)

	h.logError(ev, stdErr)
	if h.counter != nil {
		h.counter(stdErr.Code)
	}

	// The inbound context may already be cancelled; the diagnostic still goes out.
	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	text := fmt.Sprintf("⚠️ Error: %s", err.Error())
	if h.reporter != nil {
		if sendErr := h.reporter.SendText(reportCtx, h.adminID, text, nil); sendErr != nil {
			h.logger.Error("failed to report error to admin", map[string]interface{}{
				"error": sendErr.Error(),
			})
		}
	}
	if h.mirror != nil {
		if mirrorErr := h.mirror.Alert(reportCtx, "visa-bot error", text); mirrorErr != nil {
			h.logger.Error("failed to mirror error alert", map[string]interface{}{
				"error": mirrorErr.Error(),
			})
		}
	}
}

// Recover converts a panic in the calling goroutine into a handled error.
// It must be deferred directly.
func (h *ErrorHandler) Recover(ctx context.Context, ev models.Event) {
	if r := recover(); r != nil {
		h.HandleEventError(ctx, ev, NewHandlerPanicError(r))
	}
}

func (h *ErrorHandler) logError(ev models.Event, stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if ev != nil {
		fields["eventKind"] = ev.Kind()
		fields["identity"] = ev.Sender().ID.String()
	}
	h.logger.Error("event failed", fields)
}
