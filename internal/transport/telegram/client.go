// Package telegram adapts the Telegram Bot API to the bot core: it turns
// updates into events and implements notifier.Notifier.
package telegram

import (
	"context"
	"errors"
	"fmt"

	"visa-bot/internal/common/config"
	apperrors "visa-bot/internal/common/errors"
	apphttp "visa-bot/internal/common/http"
	"visa-bot/internal/common/metrics"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the subset of *tgbotapi.BotAPI the bot uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetMe() (tgbotapi.User, error)
}

var _ BotAPI = (*tgbotapi.BotAPI)(nil)

// NewBotAPI connects with the configured token. The HTTP timeout covers a
// full long poll plus the send budget.
func NewBotAPI(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	httpClient := apphttp.NewClient(cfg.PollTimeoutDuration() + config.GetDuration(cfg.SendTimeout))
	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// Client implements notifier.Notifier on top of the Bot API.
type Client struct {
	api BotAPI
}

var _ notifier.Notifier = (*Client)(nil)

func NewClient(api BotAPI) *Client {
	return &Client{api: api}
}

func (c *Client) SendText(ctx context.Context, to models.Identity, text string, kb *models.Keyboard) error {
	msg := tgbotapi.NewMessage(int64(to), text)
	if markup := toMarkup(kb); markup != nil {
		msg.ReplyMarkup = *markup
	}
	return c.send(ctx, notifier.OpSendText, msg)
}

func (c *Client) EditText(ctx context.Context, origin models.Origin, text string, kb *models.Keyboard) error {
	edit := tgbotapi.NewEditMessageText(int64(origin.Chat), origin.MessageID, text)
	edit.ReplyMarkup = toMarkup(kb)
	return c.send(ctx, notifier.OpEditText, edit)
}

func (c *Client) ForwardDocument(ctx context.Context, to models.Identity, ref models.FileRef, caption string) error {
	doc := tgbotapi.NewDocument(int64(to), tgbotapi.FileID(ref))
	doc.Caption = caption
	return c.send(ctx, notifier.OpForwardDocument, doc)
}

func (c *Client) ForwardPhoto(ctx context.Context, to models.Identity, ref models.FileRef, caption string) error {
	photo := tgbotapi.NewPhoto(int64(to), tgbotapi.FileID(ref))
	photo.Caption = caption
	return c.send(ctx, notifier.OpForwardPhoto, photo)
}

func (c *Client) Acknowledge(ctx context.Context, callbackID, text string, alert bool) error {
	if err := ctx.Err(); err != nil {
		return c.fail(notifier.OpAcknowledge, err)
	}
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := c.api.Request(cb); err != nil {
		return c.fail(notifier.OpAcknowledge, err)
	}
	metrics.OutboundSends.WithLabelValues(notifier.OpAcknowledge, "ok").Inc()
	return nil
}

// Health reports whether the bot token is still accepted.
func (c *Client) Health(context.Context) error {
	_, err := c.api.GetMe()
	return err
}

func (c *Client) send(ctx context.Context, op string, msg tgbotapi.Chattable) error {
	// the library has no context support; at least do not start late sends
	if err := ctx.Err(); err != nil {
		return c.fail(op, err)
	}
	if _, err := c.api.Send(msg); err != nil {
		return c.fail(op, err)
	}
	metrics.OutboundSends.WithLabelValues(op, "ok").Inc()
	return nil
}

func (c *Client) fail(op string, err error) error {
	metrics.OutboundSends.WithLabelValues(op, "failed").Inc()
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewDeliveryTimeoutError(op)
	}
	return apperrors.NewDeliveryFailedError(op, err)
}
