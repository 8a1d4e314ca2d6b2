// internal/workers/payment/payment-handshake/handler.go
package paymenthandshake

import (
	"context"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/common/metrics"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
	"visa-bot/internal/store"
)

const (
	WorkerName = "payment-handshake"
)

// AlertMirror receives a copy of pending-payment notices.
type AlertMirror interface {
	Alert(ctx context.Context, subject, body string) error
}

// Handler coordinates the applicant report / admin confirmation protocol.
// Nothing is recorded about past confirmations, so confirming twice
// re-sends everything.
type Handler struct {
	config   *Config
	store    store.Store
	notifier notifier.Notifier
	catalog  *content.Catalog
	mirror   AlertMirror
	logger   logger.Logger
}

type Option func(*Handler)

func WithAlertMirror(m AlertMirror) Option {
	return func(h *Handler) { h.mirror = m }
}

func NewHandler(config *Config, st store.Store, n notifier.Notifier, catalog *content.Catalog, log logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		config:   config,
		store:    st,
		notifier: n,
		catalog:  catalog,
		logger:   log.WithFields(map[string]interface{}{"worker": WorkerName}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) IsAdmin(id models.Identity) bool {
	return id == h.config.AdminID
}

// ReportPaid is phase 1: the applicant claims to have paid. The applicant
// gets a short acknowledgement and the admin a summary with a confirm button.
// A missing record yields a summary with placeholder values.
func (h *Handler) ReportPaid(ctx context.Context, applicant models.Sender) error {
	metrics.PaymentsReported.Inc()
	log := h.logger.WithFields(map[string]interface{}{"identity": applicant.ID.String()})

	if err := h.notifier.SendText(ctx, applicant.ID, reportAckText, nil); err != nil {
		log.Warn("failed to acknowledge payment report", map[string]interface{}{"error": err.Error()})
	}

	rec, err := store.Load(ctx, h.store, applicant.ID)
	if err != nil {
		log.Warn("form lookup failed, sending empty summary", map[string]interface{}{"error": err.Error()})
		rec = nil
	}

	summary := PendingSummary(applicant, rec)
	sendErr := h.notifier.SendText(ctx, h.config.AdminID, summary, h.catalog.MarkPaid(applicant.ID))
	if sendErr != nil {
		log.Error("failed to send pending summary to admin", map[string]interface{}{"error": sendErr.Error()})
	}

	if h.mirror != nil {
		if err := h.mirror.Alert(ctx, pendingSubject, summary); err != nil {
			log.Warn("failed to mirror pending summary", map[string]interface{}{"error": err.Error()})
		}
	}

	log.Info("payment reported", map[string]interface{}{"hasForm": rec != nil})

	if sendErr != nil {
		return apperrors.NewDeliveryFailedError("pending summary", sendErr)
	}
	return nil
}

// ConfirmPayment is phase 2, triggered from the admin's confirm button.
func (h *Handler) ConfirmPayment(ctx context.Context, actor models.Sender, target models.Identity) error {
	if !h.IsAdmin(actor.ID) {
		return apperrors.NewUnauthorizedError("confirm payment")
	}

	rec, err := store.Load(ctx, h.store, target)
	if err != nil {
		return err
	}
	if !hasData(rec) {
		h.sendAdmin(ctx, noFormForUser(target))
		return nil
	}

	if err := h.confirm(ctx, target, rec, confirmedHeader, PathButton); err != nil {
		h.logger.Warn("failed to notify applicant after confirmation", map[string]interface{}{
			"identity": target.String(),
			"error":    err.Error(),
		})
	}
	return nil
}

// MarkPaid is the /mark_paid override: phase 2 without a prior report.
// Every outcome is answered in the admin chat.
func (h *Handler) MarkPaid(ctx context.Context, actor models.Sender, args []string) error {
	if !h.IsAdmin(actor.ID) {
		if err := h.notifier.SendText(ctx, actor.ID, adminOnlyCommand, nil); err != nil {
			h.logger.Warn("failed to reject mark_paid", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	if len(args) == 0 {
		h.sendAdmin(ctx, markPaidUsage)
		return nil
	}
	target, err := models.ParseIdentity(args[0])
	if err != nil {
		h.sendAdmin(ctx, badIdentityText)
		return nil
	}

	rec, err := store.Load(ctx, h.store, target)
	if err != nil {
		return err
	}
	if !hasData(rec) {
		h.sendAdmin(ctx, noFormCommand)
		return nil
	}

	if err := h.confirm(ctx, target, rec, manualHeader, PathCommand); err != nil {
		h.sendAdmin(ctx, notifyFailedText(err))
		return nil
	}
	h.sendAdmin(ctx, doneText)
	return nil
}

// confirm performs the shared phase 2 sends. Each send is isolated; only
// the applicant notification error is returned.
func (h *Handler) confirm(ctx context.Context, target models.Identity, rec *models.FormRecord, header, path string) error {
	metrics.PaymentsConfirmed.WithLabelValues(path).Inc()
	admin := h.config.AdminID

	h.sendAdmin(ctx, ConfirmedSummary(header, target, rec))

	if ref, ok := rec.PassportFile(); ok {
		h.forward(ctx, ref, passportCaption, models.FileKindDocument)
	}
	if ref, ok := rec.PhotoFile(); ok {
		h.forward(ctx, ref, photoCaption, models.FileKindPhoto)
	}

	h.sendAdmin(ctx, confirmedText)

	err := h.notifier.SendText(ctx, target, completionText, h.catalog.Guide())

	h.logger.Info("payment confirmed", map[string]interface{}{
		"identity": target.String(),
		"admin":    admin.String(),
		"path":     path,
		"notified": err == nil,
	})
	return err
}

func (h *Handler) forward(ctx context.Context, ref models.FileRef, caption string, primary models.FileKind) {
	kind, err := notifier.ForwardWithFallback(ctx, h.notifier, h.config.AdminID, ref, caption, primary)
	if err != nil {
		h.logger.Error("failed to forward file to admin", map[string]interface{}{
			"caption": caption,
			"error":   err.Error(),
		})
		return
	}
	if kind != primary {
		h.logger.Debug("file forwarded with fallback kind", map[string]interface{}{
			"caption": caption,
			"kind":    string(kind),
		})
	}
}

func (h *Handler) sendAdmin(ctx context.Context, text string) {
	if err := h.notifier.SendText(ctx, h.config.AdminID, text, nil); err != nil {
		h.logger.Error("failed to send admin message", map[string]interface{}{"error": err.Error()})
	}
}
