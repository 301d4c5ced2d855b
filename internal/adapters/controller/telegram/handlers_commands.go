package telegram

import (
	"StackBot/internal/domain/errorz"
	"context"
	"errors"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "I collect community questions and answers.\n\n" +
	"/ask - post a question (guided form)\n" +
	"/answer <id> - answer a question\n" +
	"/question <id> - view a question\n" +
	"/ping - latency check\n" +
	"/help - this message"

func (c *Controller) start(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	c.send(ctx, upd.Message.Chat.ID, "Hello! I'm a community Q&A bot.\n\n"+helpText)
}

func (c *Controller) help(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	c.send(ctx, upd.Message.Chat.ID, helpText)
}

func (c *Controller) ask(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	userID := upd.Message.From.ID
	chatID := upd.Message.Chat.ID

	go c.runAskFlow(ctx, userID, chatID)
}

func (c *Controller) runAskFlow(ctx context.Context, userID, chatID int64) {
	draft, err := c.script.CollectQuestion(ctx, userID, chatID)
	if err != nil {
		c.reportCaptureError(ctx, userID, chatID, err)
		return
	}

	q, err := c.qa.Post(ctx, userID, draft)
	if err != nil {
		c.log.Error("post question", zap.Error(err))
		c.send(ctx, chatID, "Something went wrong while posting your question. Sorry.")
		return
	}
	c.send(ctx, chatID, fmt.Sprintf("Question posted with ID %d. View it with /question %d.", q.ID, q.ID))
}

func (c *Controller) answer(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	userID := upd.Message.From.ID
	chatID := upd.Message.Chat.ID

	questionID, ok := parseIDArg(upd.Message.Text)
	if !ok {
		c.send(ctx, chatID, "Usage: /answer <question id>")
		return
	}
	if _, err := c.qa.Get(ctx, questionID); err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			c.send(ctx, chatID, "Question not found.")
			return
		}
		c.log.Error("get question", zap.Int64("question_id", questionID), zap.Error(err))
		c.send(ctx, chatID, "Something went wrong. Sorry.")
		return
	}

	go c.runAnswerFlow(ctx, userID, chatID, questionID)
}

func (c *Controller) runAnswerFlow(ctx context.Context, userID, chatID, questionID int64) {
	draft, err := c.script.CollectAnswer(ctx, userID, chatID)
	if err != nil {
		c.reportCaptureError(ctx, userID, chatID, err)
		return
	}

	if err := c.qa.Answer(ctx, questionID, userID, draft); err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			c.send(ctx, chatID, "Question not found.")
			return
		}
		c.log.Error("append answer", zap.Int64("question_id", questionID), zap.Error(err))
		c.send(ctx, chatID, "Something went wrong while posting your answer. Sorry.")
		return
	}
	c.send(ctx, chatID, fmt.Sprintf("Your answer was added to question %d.", questionID))
}

func (c *Controller) question(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	chatID := upd.Message.Chat.ID

	questionID, ok := parseIDArg(upd.Message.Text)
	if !ok {
		c.send(ctx, chatID, "Usage: /question <question id>")
		return
	}

	q, err := c.qa.View(ctx, questionID)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			c.send(ctx, chatID, "Question not found.")
			return
		}
		c.log.Error("view question", zap.Int64("question_id", questionID), zap.Error(err))
		c.send(ctx, chatID, "Something went wrong. Sorry.")
		return
	}

	msg, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        questionText(q),
		ReplyMarkup: voteMarkup(q.ID),
	})
	if err != nil {
		c.log.Error("send question", zap.Int64("question_id", questionID), zap.Error(err))
		return
	}
	c.disableMarkupAfter(chatID, msg.ID, c.voteWindow)
}

func (c *Controller) ping(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	chatID := upd.Message.Chat.ID

	started := time.Now()
	if err := c.store.Ping(ctx); err != nil {
		c.log.Error("store ping", zap.Error(err))
		c.send(ctx, chatID, "The database is not reachable right now.")
		return
	}
	c.send(ctx, chatID, fmt.Sprintf("Pong! Database latency: %dms", time.Since(started).Milliseconds()))
}

// reportCaptureError turns a capture abort into the user-facing notice. On a
// confirmation-gate timeout the pending confirm message loses its buttons.
func (c *Controller) reportCaptureError(ctx context.Context, userID, chatID int64, err error) {
	switch {
	case errors.Is(err, errorz.ErrFlowActive):
		c.send(ctx, chatID, "Finish your current form first.")
	case errors.Is(err, errorz.ErrTooLong):
		c.send(ctx, chatID, fmt.Sprintf("That is too long. The maximum is %d characters.", c.charLimit))
	case errors.Is(err, errorz.ErrTimeout):
		if ref, ok := c.takeConfirm(userID, chatID); ok {
			c.editMessage(ctx, ref.chatID, ref.messageID, "You took too long. Goodbye!")
		} else {
			c.send(ctx, chatID, "You took too long to respond. Goodbye!")
		}
	case errors.Is(err, errorz.ErrCancelled):
		// the cancel press already edited the confirm message
	case errors.Is(err, context.Canceled):
		// shutting down
	default:
		c.log.Error("capture flow", zap.Int64("user_id", userID), zap.Error(err))
		c.send(ctx, chatID, "Something went wrong. Sorry.")
	}
}
