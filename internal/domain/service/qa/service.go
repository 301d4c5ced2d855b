// Package qa owns the question lifecycle and the user registry on top of the
// repository interfaces: posting, answering, view counting and voting.
package qa

import (
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Service struct {
	questions repository.QuestionRepository
	users     repository.UserRepository
	log       *zap.Logger
	now       func() time.Time
}

func New(questions repository.QuestionRepository, users repository.UserRepository, log *zap.Logger) *Service {
	return &Service{
		questions: questions,
		users:     users,
		log:       log,
		now:       time.Now,
	}
}

// Post persists a confirmed question draft and returns the stored record.
// The author record is created on first contact and the new ID is appended
// to their asked list.
func (s *Service) Post(ctx context.Context, authorID int64, draft schema.QuestionDraft) (schema.Question, error) {
	if _, err := s.users.EnsureExists(ctx, authorID); err != nil {
		return schema.Question{}, fmt.Errorf("ensure user %d: %w", authorID, err)
	}

	created, err := s.questions.Create(ctx, schema.Question{
		AuthorID:  authorID,
		Title:     draft.Title,
		Body:      draft.Body,
		Tags:      draft.Tags,
		Upvotes:   []int64{},
		Downvotes: []int64{},
		Answers:   []schema.Answer{},
		CreatedAt: s.now().Unix(),
	})
	if err != nil {
		return schema.Question{}, fmt.Errorf("create question: %w", err)
	}

	if err := s.users.AppendAsked(ctx, authorID, created.ID); err != nil {
		return schema.Question{}, fmt.Errorf("append asked question %d: %w", created.ID, err)
	}

	s.log.Info("question posted",
		zap.Int64("question_id", created.ID),
		zap.Int64("author_id", authorID))
	return created, nil
}

// Get returns the question or errorz.ErrNotFound.
func (s *Service) Get(ctx context.Context, questionID int64) (schema.Question, error) {
	return s.questions.GetByID(ctx, questionID)
}

// View returns the question for rendering and increments its view counter.
// The returned record carries the pre-increment count, matching what the
// render shows.
func (s *Service) View(ctx context.Context, questionID int64) (schema.Question, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return schema.Question{}, err
	}
	if err := s.questions.IncrementViews(ctx, questionID); err != nil {
		return schema.Question{}, fmt.Errorf("increment views for %d: %w", questionID, err)
	}
	return q, nil
}

// Answer appends a confirmed answer draft to the question and records the
// question on the author's answered list. Fails with errorz.ErrNotFound when
// the question does not exist; nothing is written in that case.
func (s *Service) Answer(ctx context.Context, questionID, authorID int64, draft schema.AnswerDraft) error {
	if _, err := s.users.EnsureExists(ctx, authorID); err != nil {
		return fmt.Errorf("ensure user %d: %w", authorID, err)
	}

	answer := schema.Answer{
		AuthorID:  authorID,
		Title:     draft.Title,
		Body:      draft.Body,
		CreatedAt: s.now().Unix(),
	}
	if err := s.questions.AppendAnswer(ctx, questionID, answer); err != nil {
		return err
	}

	if err := s.users.AppendAnswered(ctx, authorID, questionID); err != nil {
		return fmt.Errorf("append answered question %d: %w", questionID, err)
	}

	s.log.Info("answer appended",
		zap.Int64("question_id", questionID),
		zap.Int64("author_id", authorID))
	return nil
}

// Vote registers the user's vote at most once per question across both
// polarities. A repeated press, a redelivered interaction, or a vote in the
// opposite direction all resolve to VoteAlreadyCast with no state change.
func (s *Service) Vote(ctx context.Context, questionID, userID int64, polarity schema.Polarity) (schema.VoteOutcome, error) {
	if _, err := s.users.EnsureExists(ctx, userID); err != nil {
		return "", fmt.Errorf("ensure user %d: %w", userID, err)
	}

	outcome, err := s.questions.AddVote(ctx, questionID, userID, polarity)
	if err != nil {
		return "", err
	}

	s.log.Info("vote handled",
		zap.Int64("question_id", questionID),
		zap.Int64("user_id", userID),
		zap.String("polarity", string(polarity)),
		zap.String("outcome", string(outcome)))
	return outcome, nil
}
