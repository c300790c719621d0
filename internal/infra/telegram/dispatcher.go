package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"survey-bot/internal/app"
	"survey-bot/internal/domain"
)

// Dispatcher long-polls Telegram for updates and routes them into the quiz
// engine: /start greets, /quiz begins a session, button taps and plain text
// feed the active question.
type Dispatcher struct {
	client  *Client
	engine  *app.Engine
	timeout int
}

func NewDispatcher(client *Client, engine *app.Engine, pollTimeout int) *Dispatcher {
	return &Dispatcher{client: client, engine: engine, timeout: pollTimeout}
}

// Run blocks on the update channel until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = d.timeout
	updates := d.client.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			d.client.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			d.dispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		msg := update.Message
		switch msg.Command() {
		case "start":
			d.engine.Greet(ctx, msg.Chat.ID)
		case "quiz":
			d.engine.Begin(ctx, msg.Chat.ID, userOf(msg.From), msg.MessageID)
		}
	case update.Message != nil && update.Message.Text != "":
		msg := update.Message
		d.engine.HandleText(ctx, msg.Chat.ID, msg.MessageID, msg.Text)
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		// Ack first so the client stops its spinner even for stale taps.
		if _, err := d.client.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("answer callback: %v", err)
		}
		if cb.Message == nil {
			return
		}
		d.engine.HandleCallback(ctx, cb.Message.Chat.ID, cb.Message.MessageID, cb.Data)
	}
}

func userOf(u *tgbotapi.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	return domain.User{ID: u.ID, Username: u.UserName}
}
