// internal/workers/menu/show-menu/handler.go
package showmenu

import (
	"context"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
)

const (
	WorkerName = "show-menu"
)

// Handler renders the static menu screens.
type Handler struct {
	config   *Config
	notifier notifier.Notifier
	catalog  *content.Catalog
	logger   logger.Logger
}

func NewHandler(config *Config, n notifier.Notifier, catalog *content.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		notifier: n,
		catalog:  catalog,
		logger:   log.WithFields(map[string]interface{}{"worker": WorkerName}),
	}
}

// Start answers /start with the welcome text and main menu.
func (h *Handler) Start(ctx context.Context, to models.Identity) error {
	return h.render(ctx, models.Origin{Chat: to}, Screen{Name: "main", Text: content.StartText, Keyboard: h.catalog.MainMenu()})
}

// Show renders the page for a navigation action, editing the originating
// message when there is one. It reports false for non-navigation actions.
func (h *Handler) Show(ctx context.Context, origin models.Origin, action models.Action) (bool, error) {
	screen, ok := screenFor(h.catalog, action)
	if !ok {
		return false, nil
	}
	return true, h.render(ctx, origin, screen)
}

func (h *Handler) render(ctx context.Context, origin models.Origin, screen Screen) error {
	if err := notifier.EditOrSend(ctx, h.notifier, origin, screen.Text, screen.Keyboard); err != nil {
		return apperrors.NewDeliveryFailedError("menu "+screen.Name, err)
	}
	h.logger.Debug("menu shown", map[string]interface{}{
		"identity": origin.Chat.String(),
		"screen":   screen.Name,
	})
	return nil
}
