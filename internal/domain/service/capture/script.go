package capture

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
	"strings"
	"time"
)

// Prompter is the render side of a capture conversation. The controller
// implements it on top of the chat platform.
type Prompter interface {
	Prompt(ctx context.Context, chatID int64, text string) error
	PresentQuestionConfirm(ctx context.Context, userID, chatID int64, draft schema.QuestionDraft) error
	PresentAnswerConfirm(ctx context.Context, userID, chatID int64, draft schema.AnswerDraft) error
}

// Config bounds the conversation: reply length and the two suspension
// timeouts.
type Config struct {
	CharLimit      int
	PromptTimeout  time.Duration
	ConfirmTimeout time.Duration
}

// Script runs the prompt sequences on top of the engine. Any timeout,
// length violation or cancel aborts the whole flow; no partial draft is
// ever returned.
type Script struct {
	engine   *Engine
	prompter Prompter
	cfg      Config
}

func NewScript(engine *Engine, prompter Prompter, cfg Config) *Script {
	return &Script{engine: engine, prompter: prompter, cfg: cfg}
}

// CollectQuestion walks the user through title, body and tags, then the
// confirmation gate. The returned draft is only valid when err is nil.
func (s *Script) CollectQuestion(ctx context.Context, userID, chatID int64) (schema.QuestionDraft, error) {
	flow, err := s.engine.Begin(userID, chatID)
	if err != nil {
		return schema.QuestionDraft{}, err
	}
	defer flow.Close()

	title, err := s.collectBounded(ctx, flow, chatID,
		"Hello! What would you like the title of the question to be?")
	if err != nil {
		return schema.QuestionDraft{}, err
	}

	body, err := s.collectBounded(ctx, flow, chatID,
		"Great! What would you like the body of the question to be?")
	if err != nil {
		return schema.QuestionDraft{}, err
	}

	if err := s.prompter.Prompt(ctx, chatID,
		"Great! What would you like the question's tags to be? (separated by commas e.g. python, javascript) "+
			"If you do not want to add any tags, just type `none`."); err != nil {
		return schema.QuestionDraft{}, fmt.Errorf("send tags prompt: %w", err)
	}
	rawTags, err := flow.AwaitReply(ctx, s.cfg.PromptTimeout)
	if err != nil {
		return schema.QuestionDraft{}, err
	}

	draft := schema.QuestionDraft{Title: title, Body: body, Tags: ParseTags(rawTags)}

	if err := s.prompter.PresentQuestionConfirm(ctx, userID, chatID, draft); err != nil {
		return schema.QuestionDraft{}, fmt.Errorf("present confirmation: %w", err)
	}
	confirmed, err := flow.AwaitDecision(ctx, s.cfg.ConfirmTimeout)
	if err != nil {
		return schema.QuestionDraft{}, err
	}
	if !confirmed {
		return schema.QuestionDraft{}, errorz.ErrCancelled
	}
	return draft, nil
}

// CollectAnswer walks the user through an answer's title and body, then the
// confirmation gate.
func (s *Script) CollectAnswer(ctx context.Context, userID, chatID int64) (schema.AnswerDraft, error) {
	flow, err := s.engine.Begin(userID, chatID)
	if err != nil {
		return schema.AnswerDraft{}, err
	}
	defer flow.Close()

	title, err := s.collectBounded(ctx, flow, chatID,
		"What would you like the title of the answer to be?")
	if err != nil {
		return schema.AnswerDraft{}, err
	}

	body, err := s.collectBounded(ctx, flow, chatID,
		"Great! What would you like the body of the answer to be?")
	if err != nil {
		return schema.AnswerDraft{}, err
	}

	draft := schema.AnswerDraft{Title: title, Body: body}

	if err := s.prompter.PresentAnswerConfirm(ctx, userID, chatID, draft); err != nil {
		return schema.AnswerDraft{}, fmt.Errorf("present confirmation: %w", err)
	}
	confirmed, err := flow.AwaitDecision(ctx, s.cfg.ConfirmTimeout)
	if err != nil {
		return schema.AnswerDraft{}, err
	}
	if !confirmed {
		return schema.AnswerDraft{}, errorz.ErrCancelled
	}
	return draft, nil
}

// collectBounded prompts, waits for the reply and enforces the character
// limit. A reply over the limit aborts the flow rather than re-prompting.
func (s *Script) collectBounded(ctx context.Context, flow *Flow, chatID int64, prompt string) (string, error) {
	if err := s.prompter.Prompt(ctx, chatID, prompt); err != nil {
		return "", fmt.Errorf("send prompt: %w", err)
	}
	reply, err := flow.AwaitReply(ctx, s.cfg.PromptTimeout)
	if err != nil {
		return "", err
	}
	if len([]rune(reply)) > s.cfg.CharLimit {
		return "", errorz.ErrTooLong
	}
	return reply, nil
}

// ParseTags splits the raw reply on commas, trimming each part. The literal
// reply `none` (case-insensitive) is the only way to get zero tags: splitting
// a non-empty string on commas never yields an empty list, so even a reply of
// bare commas produces (empty) tag entries.
func ParseTags(raw string) []string {
	if strings.EqualFold(strings.TrimSpace(raw), "none") {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
