// Package notifier defines the outbound capability the bot core depends on
// and the delivery policies layered on top of it.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"visa-bot/internal/common/metrics"
	"visa-bot/internal/models"
)

// Operation names, also used as metric labels.
const (
	OpSendText        = "send_text"
	OpEditText        = "edit_text"
	OpForwardDocument = "forward_document"
	OpForwardPhoto    = "forward_photo"
	OpAcknowledge     = "acknowledge"
)

// Notifier is implemented by the chat transport.
type Notifier interface {
	SendText(ctx context.Context, to models.Identity, text string, kb *models.Keyboard) error
	EditText(ctx context.Context, origin models.Origin, text string, kb *models.Keyboard) error
	ForwardDocument(ctx context.Context, to models.Identity, ref models.FileRef, caption string) error
	ForwardPhoto(ctx context.Context, to models.Identity, ref models.FileRef, caption string) error
	// Acknowledge answers a button press. text may be empty; alert shows it
	// as a modal instead of a toast.
	Acknowledge(ctx context.Context, callbackID, text string, alert bool) error
}

// EditOrSend replaces the originating message when origin is editable and
// sends a fresh message otherwise. A failed edit falls back to a send.
func EditOrSend(ctx context.Context, n Notifier, origin models.Origin, text string, kb *models.Keyboard) error {
	if !origin.Editable() {
		return n.SendText(ctx, origin.Chat, text, kb)
	}

	editErr := n.EditText(ctx, origin, text, kb)
	if editErr == nil {
		return nil
	}
	if sendErr := n.SendText(ctx, origin.Chat, text, kb); sendErr != nil {
		return errors.Join(fmt.Errorf("edit: %w", editErr), fmt.Errorf("send: %w", sendErr))
	}
	return nil
}

// Forward re-sends a stored file as the given kind.
func Forward(ctx context.Context, n Notifier, kind models.FileKind, to models.Identity, ref models.FileRef, caption string) error {
	if kind == models.FileKindPhoto {
		return n.ForwardPhoto(ctx, to, ref, caption)
	}
	return n.ForwardDocument(ctx, to, ref, caption)
}

// ForwardWithFallback tries primary first and the alternate kind second.
// A bare file reference does not say whether it was uploaded as a photo or
// a document, so one of the two may be rejected by the transport. It
// returns the kind that was delivered, or both failures joined.
func ForwardWithFallback(ctx context.Context, n Notifier, to models.Identity, ref models.FileRef, caption string, primary models.FileKind) (models.FileKind, error) {
	primaryErr := Forward(ctx, n, primary, to, ref, caption)
	if primaryErr == nil {
		return primary, nil
	}

	alt := primary.Alternate()
	metrics.FileForwardFallbacks.WithLabelValues(string(primary)).Inc()
	altErr := Forward(ctx, n, alt, to, ref, caption)
	if altErr == nil {
		return alt, nil
	}
	return "", errors.Join(
		fmt.Errorf("as %s: %w", primary, primaryErr),
		fmt.Errorf("as %s: %w", alt, altErr),
	)
}
