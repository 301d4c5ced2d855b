package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot/models"
)

func (c *Controller) handleText(ctx context.Context, upd *models.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := msg.Text

	if strings.HasPrefix(text, "/") {
		return
	}

	// Replies feeding an in-flight capture flow are consumed here; the
	// engine rejects anything from another user or chat.
	if c.engine.Deliver(userID, chatID, text) {
		return
	}

	c.send(ctx, chatID, "Use /ask to post a question, or /help for the command list.")
}
