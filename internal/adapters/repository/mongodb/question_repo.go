package mongodb

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
)

type QuestionRepo struct {
	store *Store
}

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

func NewQuestionRepo(store *Store) *QuestionRepo {
	return &QuestionRepo{store: store}
}

func (r *QuestionRepo) Create(ctx context.Context, q schema.Question) (schema.Question, error) {
	id, err := r.store.NextSequence(ctx, collectionQuestions)
	if err != nil {
		return schema.Question{}, err
	}
	q.ID = id
	if err := r.store.Insert(ctx, collectionQuestions, q); err != nil {
		return schema.Question{}, err
	}
	return q, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (schema.Question, error) {
	var q schema.Question
	found, err := r.store.FindByID(ctx, collectionQuestions, id, &q)
	if err != nil {
		return schema.Question{}, err
	}
	if !found {
		return schema.Question{}, errorz.ErrNotFound
	}
	return q, nil
}

func (r *QuestionRepo) IncrementViews(ctx context.Context, id int64) error {
	matched, err := r.store.IncrementField(ctx, collectionQuestions, id, "views", 1)
	if err != nil {
		return err
	}
	if !matched {
		return errorz.ErrNotFound
	}
	return nil
}

func (r *QuestionRepo) AppendAnswer(ctx context.Context, id int64, a schema.Answer) error {
	matched, err := r.store.PushField(ctx, collectionQuestions, id, "answers", a)
	if err != nil {
		return err
	}
	if !matched {
		return errorz.ErrNotFound
	}
	return nil
}

// AddVote registers the vote with a single conditional add-to-set update
// that requires the user to be absent from both polarity arrays. When the
// condition does not match, a follow-up read distinguishes a missing
// question from an already-cast vote.
func (r *QuestionRepo) AddVote(ctx context.Context, id, userID int64, p schema.Polarity) (schema.VoteOutcome, error) {
	field, err := polarityField(p)
	if err != nil {
		return "", err
	}

	matched, err := r.store.AddToSet(ctx, collectionQuestions, id, field, userID, "upvotes", "downvotes")
	if err != nil {
		return "", err
	}
	if matched {
		return schema.VoteRegistered, nil
	}

	var q schema.Question
	found, err := r.store.FindByID(ctx, collectionQuestions, id, &q)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errorz.ErrNotFound
	}
	return schema.VoteAlreadyCast, nil
}

func polarityField(p schema.Polarity) (string, error) {
	switch p {
	case schema.PolarityUp:
		return "upvotes", nil
	case schema.PolarityDown:
		return "downvotes", nil
	default:
		return "", fmt.Errorf("unknown polarity %q", p)
	}
}
