// internal/workers/form/step-sequencer/handler.go
package stepsequencer

import (
	"context"
	"fmt"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/common/metrics"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
	"visa-bot/internal/store"
)

const (
	WorkerName = "step-sequencer"
)

// Handler applies Machine outcomes: it persists the record first and then
// delivers the replies to the event's origin.
type Handler struct {
	config   *Config
	store    store.Store
	notifier notifier.Notifier
	machine  *Machine
	logger   logger.Logger
}

func NewHandler(config *Config, st store.Store, n notifier.Notifier, catalog *content.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		store:    st,
		notifier: n,
		machine:  NewMachine(catalog, config.RejectBlankAnswers),
		logger:   log.WithFields(map[string]interface{}{"worker": WorkerName}),
	}
}

// Handle feeds one input for the sender of origin into the form. It reports
// whether the input applied to the sender's current step.
func (h *Handler) Handle(ctx context.Context, origin models.Origin, in Input) (bool, error) {
	id := origin.Chat

	rec, err := store.Load(ctx, h.store, id)
	if err != nil {
		return false, err
	}
	step := models.StepInactive
	if rec != nil {
		step = rec.Step
	}

	out := h.machine.Transition(step, in)
	if !out.Handled {
		h.logger.Debug("input ignored", map[string]interface{}{
			"identity": id.String(),
			"step":     step.String(),
			"input":    in.Kind.String(),
		})
		return false, nil
	}

	if err := h.apply(ctx, id, rec, out); err != nil {
		return true, err
	}
	h.observe(step, in, out)

	h.logger.Info("form step processed", map[string]interface{}{
		"identity": id.String(),
		"from":     step.String(),
		"to":       out.Next.String(),
		"input":    in.Kind.String(),
	})

	target := origin
	for _, reply := range out.Replies {
		if err := notifier.EditOrSend(ctx, h.notifier, target, reply.Text, reply.Keyboard); err != nil {
			return true, apperrors.NewDeliveryFailedError("form prompt", err)
		}
		target = models.Origin{Chat: id}
	}
	return true, nil
}

func (h *Handler) apply(ctx context.Context, id models.Identity, rec *models.FormRecord, out Outcome) error {
	if out.Reset {
		if err := h.store.Clear(ctx, id); err != nil {
			return fmt.Errorf("reset form: %w", err)
		}
		rec = nil
	}
	if rec == nil {
		rec = models.NewFormRecord(id, out.Next)
	}
	if a := out.Assignment; a != nil {
		rec.Set(a.Field, a.Value)
	}
	rec.Step = out.Next

	if err := h.store.Set(ctx, rec); err != nil {
		return fmt.Errorf("save form: %w", err)
	}
	return nil
}

func (h *Handler) observe(from models.Step, in Input, out Outcome) {
	switch {
	case in.Kind == InputCancel:
		metrics.FormsCancelled.Inc()
	case out.Assignment != nil:
		metrics.FormStepsCompleted.WithLabelValues(from.String()).Inc()
		if from == models.StepPhotoFile {
			metrics.FormsCompleted.Inc()
		}
	}
}

// Step returns the sender's current step, StepInactive when no form exists.
func (h *Handler) Step(ctx context.Context, id models.Identity) (models.Step, error) {
	rec, err := store.Load(ctx, h.store, id)
	if err != nil || rec == nil {
		return models.StepInactive, err
	}
	return rec.Step, nil
}
