package telegram

import (
	"context"
	"errors"

	"visa-bot/internal/common/logger"
	"visa-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrUpdatesClosed is returned when the library stops delivering updates
// before the poller was asked to stop.
var ErrUpdatesClosed = errors.New("telegram: update channel closed")

// Dispatcher handles one event to completion.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.Event)
}

// Poller long-polls for updates and hands them to the dispatcher one at a
// time, in arrival order.
type Poller struct {
	api        BotAPI
	dispatcher Dispatcher
	timeout    int
	logger     logger.Logger
}

// NewPoller builds a poller; timeout is the long-poll timeout in seconds.
func NewPoller(api BotAPI, d Dispatcher, timeout int, log logger.Logger) *Poller {
	return &Poller{
		api:        api,
		dispatcher: d,
		timeout:    timeout,
		logger:     log.WithFields(map[string]interface{}{"component": "poller"}),
	}
}

// Run blocks until ctx is done or the update channel closes.
func (p *Poller) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	updates := p.api.GetUpdatesChan(u)
	defer p.api.StopReceivingUpdates()

	p.logger.Info("Polling for updates", map[string]interface{}{"timeout": p.timeout})

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopping", nil)
			return nil
		case upd, ok := <-updates:
			if !ok {
				return ErrUpdatesClosed
			}
			ev, ok := ToEvent(upd)
			if !ok {
				p.logger.Debug("Ignoring update", map[string]interface{}{"updateId": upd.UpdateID})
				continue
			}
			// an event already taken off the channel is always finished
			p.dispatcher.Dispatch(context.WithoutCancel(ctx), ev)
		}
	}
}
