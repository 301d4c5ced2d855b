package telegram

import (
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Prompt sends a plain capture prompt to the chat.
func (c *Controller) Prompt(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	return err
}

// PresentQuestionConfirm renders the draft preview with the Confirm/Cancel
// gate and remembers the message so a gate timeout can strip its buttons.
func (c *Controller) PresentQuestionConfirm(ctx context.Context, userID, chatID int64, draft schema.QuestionDraft) error {
	msg, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Are you sure you want to post this question?\n\n" + questionPreview(draft),
		ReplyMarkup: confirmMarkup("q"),
	})
	if err != nil {
		return err
	}
	c.trackConfirm(userID, chatID, msg.ID, "q")
	return nil
}

// PresentAnswerConfirm renders the answer preview with its gate.
func (c *Controller) PresentAnswerConfirm(ctx context.Context, userID, chatID int64, draft schema.AnswerDraft) error {
	msg, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("Are you sure you want to post this answer?\n\n%s\n\n%s", draft.Title, draft.Body),
		ReplyMarkup: confirmMarkup("a"),
	})
	if err != nil {
		return err
	}
	c.trackConfirm(userID, chatID, msg.ID, "a")
	return nil
}

func questionPreview(draft schema.QuestionDraft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s", draft.Title, draft.Body)
	if len(draft.Tags) > 0 {
		fmt.Fprintf(&b, "\n\nTags: %s", strings.Join(draft.Tags, ", "))
	}
	return b.String()
}

func questionText(q schema.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question #%d: %s\n\n%s\n", q.ID, q.Title, q.Body)
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(q.Tags, ", "))
	}
	fmt.Fprintf(&b, "\nUpvotes: %d | Downvotes: %d | Views: %d | Answers: %d",
		len(q.Upvotes), len(q.Downvotes), q.Views, len(q.Answers))
	fmt.Fprintf(&b, "\nPosted at %s", time.Unix(q.CreatedAt, 0).UTC().Format("2006-01-02 15:04 UTC"))
	return b.String()
}

func voteMarkup(questionID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{Text: "👍 Upvote", CallbackData: fmt.Sprintf("vote:u:%d", questionID)},
			{Text: "👎 Downvote", CallbackData: fmt.Sprintf("vote:d:%d", questionID)},
		},
	}}
}

func confirmMarkup(kind string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{Text: "✅ Confirm", CallbackData: "cfm:" + kind + ":y"},
			{Text: "❌ Cancel", CallbackData: "cfm:" + kind + ":x"},
		},
	}}
}

func (c *Controller) send(ctx context.Context, chatID int64, text string) {
	if _, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		c.log.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// editMessage replaces the message text and strips its buttons.
func (c *Controller) editMessage(ctx context.Context, chatID int64, messageID int, text string) {
	if _, err := c.bot.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}); err != nil {
		c.log.Warn("edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// disableMarkupAfter strips a message's buttons once the interaction window
// closes, matching how rendered questions stop accepting votes.
func (c *Controller) disableMarkupAfter(chatID int64, messageID int, window time.Duration) {
	time.AfterFunc(window, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.bot.EditMessageReplyMarkup(ctx, &tgbot.EditMessageReplyMarkupParams{
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}},
		}); err != nil {
			c.log.Debug("disable markup", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	})
}
