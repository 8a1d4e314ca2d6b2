package telegram

import (
	"strings"

	"visa-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ToEvent converts an update into a bot event. Updates the bot does not act
// on (edited messages, channel posts, stickers and the like) report false.
func ToEvent(u tgbotapi.Update) (models.Event, bool) {
	if cq := u.CallbackQuery; cq != nil {
		if cq.From == nil {
			return nil, false
		}
		press := models.ButtonPress{
			From:       sender(cq.From),
			CallbackID: cq.ID,
			Tag:        cq.Data,
		}
		if cq.Message != nil {
			press.MessageID = cq.Message.MessageID
		}
		return press, true
	}

	m := u.Message
	if m == nil || m.From == nil {
		return nil, false
	}
	from := sender(m.From)

	switch {
	case m.IsCommand():
		return models.Command{
			From: from,
			Name: m.Command(),
			Args: strings.Fields(m.CommandArguments()),
		}, true

	case m.Document != nil:
		return models.DocumentUpload{From: from, FileRef: models.FileRef(m.Document.FileID)}, true

	case len(m.Photo) > 0:
		refs := make([]models.FileRef, 0, len(m.Photo))
		for _, size := range m.Photo {
			refs = append(refs, models.FileRef(size.FileID))
		}
		return models.PhotoUpload{From: from, FileRefs: refs}, true

	case m.Text != "":
		return models.TextMessage{From: from, Text: m.Text}, true
	}

	return nil, false
}

func sender(u *tgbotapi.User) models.Sender {
	return models.Sender{
		ID:   models.Identity(u.ID),
		Name: strings.TrimSpace(u.FirstName + " " + u.LastName),
	}
}

// toMarkup renders a keyboard; nil or empty keyboards render as nil.
func toMarkup(kb *models.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
