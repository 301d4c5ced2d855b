package repository

import (
	"StackBot/internal/domain/schema"
	"context"
)

// QuestionRepository owns the question lifecycle. Implementations must keep
// ID assignment gapless and vote registration idempotent even under
// concurrent calls.
type QuestionRepository interface {
	// Create assigns the next sequential ID and persists the question.
	Create(ctx context.Context, q schema.Question) (schema.Question, error)
	GetByID(ctx context.Context, id int64) (schema.Question, error)
	// IncrementViews bumps the view counter by one; called once per render.
	IncrementViews(ctx context.Context, id int64) error
	AppendAnswer(ctx context.Context, id int64, a schema.Answer) error
	// AddVote registers the user's vote at most once across both polarities.
	// A user already present in either set gets VoteAlreadyCast.
	AddVote(ctx context.Context, id, userID int64, p schema.Polarity) (schema.VoteOutcome, error)
}
