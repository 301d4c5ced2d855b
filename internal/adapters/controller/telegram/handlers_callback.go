package telegram

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/schema"
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

func (c *Controller) handleCallback(ctx context.Context, upd *models.Update) {
	cb := upd.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "vote:"):
		c.handleVote(ctx, cb)
	case strings.HasPrefix(data, "cfm:"):
		c.handleConfirm(ctx, cb)
	}
}

func (c *Controller) handleVote(ctx context.Context, cb *models.CallbackQuery) {
	userID := cb.From.ID

	// The platform may redeliver a button press; drop exact duplicates
	// before they reach the store. The vote guard there stays authoritative.
	first, err := c.dedupe.FirstDelivery(ctx, "cb:"+cb.ID)
	if err != nil {
		c.log.Warn("interaction dedupe", zap.Error(err))
	} else if !first {
		c.answerCallback(ctx, cb.ID, "")
		return
	}

	var polarity schema.Polarity
	switch {
	case strings.HasPrefix(cb.Data, "vote:u:"):
		polarity = schema.PolarityUp
	case strings.HasPrefix(cb.Data, "vote:d:"):
		polarity = schema.PolarityDown
	default:
		return
	}
	questionID, ok := parseInt64Part(cb.Data, 2)
	if !ok {
		return
	}

	outcome, err := c.qa.Vote(ctx, questionID, userID, polarity)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			c.answerCallback(ctx, cb.ID, "Question not found.")
			return
		}
		c.log.Error("vote", zap.Int64("question_id", questionID), zap.Error(err))
		c.answerCallback(ctx, cb.ID, "Something went wrong. Sorry.")
		return
	}

	switch outcome {
	case schema.VoteAlreadyCast:
		c.answerCallback(ctx, cb.ID, "You have already voted on this question.")
	case schema.VoteRegistered:
		if polarity == schema.PolarityUp {
			c.answerCallback(ctx, cb.ID, "Upvoted.")
		} else {
			c.answerCallback(ctx, cb.ID, "Downvoted.")
		}
	}
}

// handleConfirm resolves a confirmation gate. Only the user who started the
// flow can resolve it; the engine refuses a press from anyone else.
func (c *Controller) handleConfirm(ctx context.Context, cb *models.CallbackQuery) {
	userID := cb.From.ID
	chatID := cb.Message.Message.Chat.ID

	parts := strings.Split(cb.Data, ":")
	if len(parts) != 3 {
		return
	}
	kind, decision := parts[1], parts[2]
	confirmed := decision == "y"

	if !c.engine.Decide(userID, chatID, confirmed) {
		c.answerCallback(ctx, cb.ID, "This confirmation is not for you.")
		return
	}
	c.answerCallback(ctx, cb.ID, "")
	c.takeConfirm(userID, chatID)

	text := "Cancelled."
	if confirmed {
		if kind == "a" {
			text = "Answer submitted."
		} else {
			text = "Question submitted."
		}
	}
	c.editMessage(ctx, chatID, cb.Message.Message.ID, text)
}
