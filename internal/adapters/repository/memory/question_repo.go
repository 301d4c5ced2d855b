// Package memory holds in-memory repository implementations with the same
// observable semantics as the mongodb adapters: gapless sequential IDs,
// set-semantics voting and append-only answers.
package memory

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
	"sync"
)

type QuestionRepo struct {
	mu        sync.Mutex
	questions map[int64]*schema.Question
	lastID    int64
}

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{questions: make(map[int64]*schema.Question)}
}

func (r *QuestionRepo) Create(_ context.Context, q schema.Question) (schema.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	q.ID = r.lastID
	stored := q
	r.questions[q.ID] = &stored
	return copyQuestion(&stored), nil
}

func (r *QuestionRepo) GetByID(_ context.Context, id int64) (schema.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return schema.Question{}, errorz.ErrNotFound
	}
	return copyQuestion(q), nil
}

func (r *QuestionRepo) IncrementViews(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return errorz.ErrNotFound
	}
	q.Views++
	return nil
}

func (r *QuestionRepo) AppendAnswer(_ context.Context, id int64, a schema.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return errorz.ErrNotFound
	}
	q.Answers = append(q.Answers, a)
	return nil
}

func (r *QuestionRepo) AddVote(_ context.Context, id, userID int64, p schema.Polarity) (schema.VoteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return "", errorz.ErrNotFound
	}
	if q.HasVoted(userID) {
		return schema.VoteAlreadyCast, nil
	}
	switch p {
	case schema.PolarityUp:
		q.Upvotes = append(q.Upvotes, userID)
	case schema.PolarityDown:
		q.Downvotes = append(q.Downvotes, userID)
	default:
		return "", fmt.Errorf("unknown polarity %q", p)
	}
	return schema.VoteRegistered, nil
}

func copyQuestion(q *schema.Question) schema.Question {
	out := *q
	out.Tags = append([]string(nil), q.Tags...)
	out.Upvotes = append([]int64(nil), q.Upvotes...)
	out.Downvotes = append([]int64(nil), q.Downvotes...)
	out.Answers = append([]schema.Answer(nil), q.Answers...)
	return out
}
