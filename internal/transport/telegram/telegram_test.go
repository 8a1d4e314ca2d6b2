package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Bot API
// ==========================

type MockBotAPI struct {
	SendFunc    func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	RequestFunc func(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetMeFunc   func() (tgbotapi.User, error)
	Updates     chan tgbotapi.Update

	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	stopped bool
}

func (m *MockBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	m.sent = append(m.sent, c)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(c)
	}
	return tgbotapi.Message{}, nil
}

func (m *MockBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	m.sent = append(m.sent, c)
	m.mu.Unlock()
	if m.RequestFunc != nil {
		return m.RequestFunc(c)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *MockBotAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return m.Updates
}

func (m *MockBotAPI) StopReceivingUpdates() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *MockBotAPI) GetMe() (tgbotapi.User, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc()
	}
	return tgbotapi.User{ID: 1, IsBot: true}, nil
}

func (m *MockBotAPI) last() tgbotapi.Chattable {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}

// ==========================
// Update conversion
// ==========================

func command(text string, length int) *tgbotapi.Message {
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: 7782365882, FirstName: "Ad", LastName: "Min"},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func TestToEvent(t *testing.T) {
	jane := &tgbotapi.User{ID: 42, FirstName: "Jane", LastName: "Doe"}

	tests := []struct {
		name   string
		update tgbotapi.Update
		want   models.Event
		ok     bool
	}{
		{
			name:   "text message",
			update: tgbotapi.Update{Message: &tgbotapi.Message{From: jane, Text: "Jane Doe"}},
			want:   models.TextMessage{From: models.Sender{ID: 42, Name: "Jane Doe"}, Text: "Jane Doe"},
			ok:     true,
		},
		{
			name:   "first name only",
			update: tgbotapi.Update{Message: &tgbotapi.Message{From: &tgbotapi.User{ID: 5, FirstName: "Cher"}, Text: "hi"}},
			want:   models.TextMessage{From: models.Sender{ID: 5, Name: "Cher"}, Text: "hi"},
			ok:     true,
		},
		{
			name: "button press",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID: "cb-1", From: jane, Data: "set_nat:India",
				Message: &tgbotapi.Message{MessageID: 99},
			}},
			want: models.ButtonPress{From: models.Sender{ID: 42, Name: "Jane Doe"}, CallbackID: "cb-1", MessageID: 99, Tag: "set_nat:India"},
			ok:   true,
		},
		{
			name:   "button press without message",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb-2", From: jane, Data: "apply"}},
			want:   models.ButtonPress{From: models.Sender{ID: 42, Name: "Jane Doe"}, CallbackID: "cb-2", Tag: "apply"},
			ok:     true,
		},
		{
			name:   "command with arguments",
			update: tgbotapi.Update{Message: command("/mark_paid  42 ", 10)},
			want:   models.Command{From: models.Sender{ID: 7782365882, Name: "Ad Min"}, Name: "mark_paid", Args: []string{"42"}},
			ok:     true,
		},
		{
			name:   "command addressed to bot",
			update: tgbotapi.Update{Message: command("/start@VisaBot", 14)},
			want:   models.Command{From: models.Sender{ID: 7782365882, Name: "Ad Min"}, Name: "start", Args: []string{}},
			ok:     true,
		},
		{
			name: "document",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				From: jane, Document: &tgbotapi.Document{FileID: "doc-1"},
			}},
			want: models.DocumentUpload{From: models.Sender{ID: 42, Name: "Jane Doe"}, FileRef: "doc-1"},
			ok:   true,
		},
		{
			name: "photo keeps resolution order",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				From:  jane,
				Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
			}},
			want: models.PhotoUpload{From: models.Sender{ID: 42, Name: "Jane Doe"}, FileRefs: []models.FileRef{"small", "large"}},
			ok:   true,
		},
		{
			name:   "sticker ignored",
			update: tgbotapi.Update{Message: &tgbotapi.Message{From: jane, Sticker: &tgbotapi.Sticker{FileID: "s"}}},
		},
		{
			name:   "channel post ignored",
			update: tgbotapi.Update{ChannelPost: &tgbotapi.Message{Text: "news"}},
		},
		{
			name:   "message without sender ignored",
			update: tgbotapi.Update{Message: &tgbotapi.Message{Text: "anon"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToEvent(tt.update)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			if cmd, isCmd := tt.want.(models.Command); isCmd {
				gotCmd, isGotCmd := got.(models.Command)
				require.True(t, isGotCmd)
				assert.Equal(t, cmd.From, gotCmd.From)
				assert.Equal(t, cmd.Name, gotCmd.Name)
				assert.ElementsMatch(t, cmd.Args, gotCmd.Args)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMarkup(t *testing.T) {
	assert.Nil(t, toMarkup(nil))
	assert.Nil(t, toMarkup(&models.Keyboard{}))

	kb := &models.Keyboard{Rows: [][]models.Button{
		{{Label: "Apply", Action: "apply"}},
		{{Label: "Site", URL: "https://example.com"}, {Label: "Back", Action: "back_main"}},
	}}
	markup := toMarkup(kb)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)

	apply := markup.InlineKeyboard[0][0]
	assert.Equal(t, "Apply", apply.Text)
	require.NotNil(t, apply.CallbackData)
	assert.Equal(t, "apply", *apply.CallbackData)
	assert.Nil(t, apply.URL)

	site := markup.InlineKeyboard[1][0]
	require.NotNil(t, site.URL)
	assert.Equal(t, "https://example.com", *site.URL)
	assert.Nil(t, site.CallbackData)
}

// ==========================
// Client
// ==========================

func TestClient_SendText(t *testing.T) {
	api := &MockBotAPI{}
	c := NewClient(api)

	err := c.SendText(context.Background(), 42, "hello", models.NewKeyboard(models.Button{Label: "Go", Action: "apply"}))
	require.NoError(t, err)

	msg, ok := api.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "hello", msg.Text)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Len(t, markup.InlineKeyboard, 1)
}

func TestClient_SendTextWithoutKeyboard(t *testing.T) {
	api := &MockBotAPI{}
	c := NewClient(api)

	require.NoError(t, c.SendText(context.Background(), 42, "plain", nil))

	msg := api.last().(tgbotapi.MessageConfig)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestClient_EditText(t *testing.T) {
	api := &MockBotAPI{}
	c := NewClient(api)

	err := c.EditText(context.Background(), models.Origin{Chat: 42, MessageID: 7}, "edited", nil)
	require.NoError(t, err)

	edit, ok := api.last().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), edit.ChatID)
	assert.Equal(t, 7, edit.MessageID)
	assert.Equal(t, "edited", edit.Text)
	assert.Nil(t, edit.ReplyMarkup)
}

func TestClient_Forward(t *testing.T) {
	api := &MockBotAPI{}
	c := NewClient(api)
	ctx := context.Background()

	require.NoError(t, c.ForwardDocument(ctx, 1, "doc-1", "Passport"))
	doc, ok := api.last().(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.FileID("doc-1"), doc.File)
	assert.Equal(t, "Passport", doc.Caption)

	require.NoError(t, c.ForwardPhoto(ctx, 1, "ph-1", "Photo"))
	photo, ok := api.last().(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.FileID("ph-1"), photo.File)
	assert.Equal(t, "Photo", photo.Caption)
}

func TestClient_Acknowledge(t *testing.T) {
	api := &MockBotAPI{}
	c := NewClient(api)

	require.NoError(t, c.Acknowledge(context.Background(), "cb-1", "Only admin can confirm payment.", true))

	cb, ok := api.last().(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, "cb-1", cb.CallbackQueryID)
	assert.Equal(t, "Only admin can confirm payment.", cb.Text)
	assert.True(t, cb.ShowAlert)
}

func TestClient_Errors(t *testing.T) {
	t.Run("send failure is delivery failed", func(t *testing.T) {
		api := &MockBotAPI{SendFunc: func(tgbotapi.Chattable) (tgbotapi.Message, error) {
			return tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user")
		}}
		err := NewClient(api).SendText(context.Background(), 42, "x", nil)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDeliveryFailed))
		assert.Contains(t, err.Error(), "blocked")
	})

	t.Run("ack failure is delivery failed", func(t *testing.T) {
		api := &MockBotAPI{RequestFunc: func(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
			return nil, errors.New("query is too old")
		}}
		err := NewClient(api).Acknowledge(context.Background(), "cb", "", false)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDeliveryFailed))
	})

	t.Run("expired context is not sent", func(t *testing.T) {
		api := &MockBotAPI{}
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		err := NewClient(api).SendText(ctx, 42, "late", nil)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDeliveryTimeout))
		assert.Nil(t, api.last())
	})
}

func TestClient_Health(t *testing.T) {
	ok := NewClient(&MockBotAPI{})
	assert.NoError(t, ok.Health(context.Background()))

	bad := NewClient(&MockBotAPI{GetMeFunc: func() (tgbotapi.User, error) {
		return tgbotapi.User{}, errors.New("Unauthorized")
	}})
	assert.Error(t, bad.Health(context.Background()))
}

// ==========================
// Poller
// ==========================

type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.Event
	done   chan struct{}
	want   int
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, ev models.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	if len(d.events) == d.want {
		close(d.done)
	}
}

func TestPoller_DispatchesInOrder(t *testing.T) {
	updates := make(chan tgbotapi.Update, 4)
	api := &MockBotAPI{Updates: updates}
	d := &recordingDispatcher{done: make(chan struct{}), want: 2}
	p := NewPoller(api, d, 30, logger.NewTestLogger(t))

	jane := &tgbotapi.User{ID: 42, FirstName: "Jane"}
	updates <- tgbotapi.Update{UpdateID: 1, Message: &tgbotapi.Message{From: jane, Text: "first"}}
	updates <- tgbotapi.Update{UpdateID: 2, ChannelPost: &tgbotapi.Message{Text: "skipped"}}
	updates <- tgbotapi.Update{UpdateID: 3, Message: &tgbotapi.Message{From: jane, Text: "second"}}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	select {
	case <-d.done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not dispatched")
	}
	cancel()
	require.NoError(t, <-errCh)

	require.Len(t, d.events, 2)
	assert.Equal(t, "first", d.events[0].(models.TextMessage).Text)
	assert.Equal(t, "second", d.events[1].(models.TextMessage).Text)

	api.mu.Lock()
	assert.True(t, api.stopped)
	api.mu.Unlock()
}

func TestPoller_StopsWhenChannelCloses(t *testing.T) {
	updates := make(chan tgbotapi.Update)
	close(updates)
	api := &MockBotAPI{Updates: updates}
	p := NewPoller(api, &recordingDispatcher{done: make(chan struct{})}, 0, logger.NewNoOpLogger())

	assert.ErrorIs(t, p.Run(context.Background()), ErrUpdatesClosed)
}
