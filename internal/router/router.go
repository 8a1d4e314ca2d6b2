// Package router resolves inbound chat events to the form, payment and
// menu workers.
package router

import (
	"context"
	"time"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/common/metrics"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
	stepsequencer "visa-bot/internal/workers/form/step-sequencer"

	"github.com/google/uuid"
)

const (
	CommandStart    = "start"
	CommandCancel   = "cancel"
	CommandMarkPaid = "mark_paid"
)

type Sequencer interface {
	Handle(ctx context.Context, origin models.Origin, in stepsequencer.Input) (bool, error)
}

type Payments interface {
	IsAdmin(id models.Identity) bool
	ReportPaid(ctx context.Context, applicant models.Sender) error
	ConfirmPayment(ctx context.Context, actor models.Sender, target models.Identity) error
	MarkPaid(ctx context.Context, actor models.Sender, args []string) error
}

type Menu interface {
	Start(ctx context.Context, to models.Identity) error
	Show(ctx context.Context, origin models.Origin, action models.Action) (bool, error)
}

type Router struct {
	notifier notifier.Notifier
	form     Sequencer
	payments Payments
	menu     Menu
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
	timeout  time.Duration
}

func New(n notifier.Notifier, form Sequencer, payments Payments, menu Menu, eh *apperrors.ErrorHandler, log logger.Logger) *Router {
	return &Router{
		notifier: n,
		form:     form,
		payments: payments,
		menu:     menu,
		errors:   eh,
		logger:   log.WithFields(map[string]interface{}{"component": "router"}),
		timeout:  30 * time.Second,
	}
}

// Dispatch handles one event to completion. It never panics and never
// returns an error: failures are handed to the ErrorHandler so that the
// serving loop can continue with the next event.
func (r *Router) Dispatch(ctx context.Context, ev models.Event) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	metrics.EventsReceived.WithLabelValues(ev.Kind()).Inc()
	defer func() {
		metrics.EventDuration.WithLabelValues(ev.Kind()).Observe(time.Since(start).Seconds())
	}()

	log := r.logger.WithFields(map[string]interface{}{
		"eventId":   uuid.NewString(),
		"eventKind": ev.Kind(),
		"identity":  ev.Sender().ID.String(),
	})

	defer r.errors.Recover(ctx, ev)

	if err := r.route(ctx, ev, log); err != nil {
		r.errors.HandleEventError(ctx, ev, err)
	}
}

func (r *Router) route(ctx context.Context, ev models.Event, log logger.Logger) error {
	origin := models.OriginOf(ev)

	switch e := ev.(type) {
	case models.ButtonPress:
		return r.onButton(ctx, e, log)

	case models.TextMessage:
		return r.toForm(ctx, origin, stepsequencer.Text(e.Text), log)

	case models.DocumentUpload:
		return r.toForm(ctx, origin, stepsequencer.Upload(e.FileRef), log)

	case models.PhotoUpload:
		return r.toForm(ctx, origin, stepsequencer.Upload(e.FileRefs...), log)

	case models.Command:
		return r.onCommand(ctx, e, log)
	}

	log.Warn("unsupported event", nil)
	return nil
}

func (r *Router) onCommand(ctx context.Context, cmd models.Command, log logger.Logger) error {
	switch cmd.Name {
	case CommandStart:
		return r.menu.Start(ctx, cmd.From.ID)
	case CommandMarkPaid:
		return r.payments.MarkPaid(ctx, cmd.From, cmd.Args)
	case CommandCancel:
		// outside a form /cancel has nothing to cancel
		return r.toForm(ctx, models.OriginOf(cmd), stepsequencer.Cancel(), log)
	}
	log.Debug("unknown command ignored", map[string]interface{}{"command": cmd.Name})
	return nil
}

func (r *Router) onButton(ctx context.Context, press models.ButtonPress, log logger.Logger) error {
	action, parseErr := models.ParseAction(press.Tag)

	// exactly one acknowledgement, before any other effect
	text, alert := acknowledgement(action, parseErr, r.payments.IsAdmin(press.From.ID))
	r.acknowledge(ctx, press, text, alert, log)

	if parseErr != nil {
		log.Info("unknown action", map[string]interface{}{
			"tag":   press.Tag,
			"error": apperrors.NewInvalidActionError(press.Tag, parseErr).Error(),
		})
		return nil
	}

	origin := press.Origin()
	switch a := action.(type) {
	case models.FillForm:
		return r.toForm(ctx, origin, stepsequencer.Start(), log)

	case models.SelectNationality:
		return r.toForm(ctx, origin, stepsequencer.Nationality(a.Country), log)

	case models.BackMain:
		handled, err := r.form.Handle(ctx, origin, stepsequencer.Cancel())
		if err != nil || handled {
			return err
		}
		_, err = r.menu.Show(ctx, origin, a)
		return err

	case models.NationalityHint:
		return nil

	case models.UserPaid:
		return r.payments.ReportPaid(ctx, press.From)

	case models.ConfirmPayment:
		if !r.payments.IsAdmin(press.From.ID) {
			log.Warn("payment confirmation rejected", map[string]interface{}{"target": a.Target.String()})
			return nil
		}
		return r.payments.ConfirmPayment(ctx, press.From, a.Target)

	case models.Apply, models.Requirements, models.FAQ, models.Eligible:
		_, err := r.menu.Show(ctx, origin, a)
		return err
	}

	log.Warn("decoded action has no route", map[string]interface{}{"tag": press.Tag})
	return nil
}

func (r *Router) toForm(ctx context.Context, origin models.Origin, in stepsequencer.Input, log logger.Logger) error {
	handled, err := r.form.Handle(ctx, origin, in)
	if err == nil && !handled {
		log.Debug("event not consumed by form", map[string]interface{}{"input": in.Kind.String()})
	}
	return err
}

func (r *Router) acknowledge(ctx context.Context, press models.ButtonPress, text string, alert bool, log logger.Logger) {
	if err := r.notifier.Acknowledge(ctx, press.CallbackID, text, alert); err != nil {
		metrics.ButtonAcks.WithLabelValues("failed").Inc()
		log.Warn("failed to acknowledge button", map[string]interface{}{"error": err.Error()})
		return
	}
	metrics.ButtonAcks.WithLabelValues("ok").Inc()
}

// acknowledgement returns the toast (or alert) shown for a button press.
func acknowledgement(action models.Action, parseErr error, fromAdmin bool) (string, bool) {
	if parseErr != nil {
		return content.AckUnknownAction, false
	}
	switch action.(type) {
	case models.NationalityHint:
		return content.AckNationalityHint, false
	case models.ConfirmPayment:
		if !fromAdmin {
			return content.AckAdminOnly, true
		}
	}
	return "", false
}
