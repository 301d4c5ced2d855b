package memory

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/schema"
	"context"
	"sync"
)

type UserRepo struct {
	mu      sync.Mutex
	users   map[int64]*schema.User
	inserts int
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]*schema.User)}
}

func (r *UserRepo) EnsureExists(_ context.Context, userID int64) (schema.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userID]; ok {
		return copyUser(u), nil
	}
	u := &schema.User{
		ID:                userID,
		QuestionsAsked:    []int64{},
		QuestionsAnswered: []int64{},
	}
	r.users[userID] = u
	r.inserts++
	return copyUser(u), nil
}

func (r *UserRepo) AppendAsked(_ context.Context, userID, questionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return errorz.ErrNotFound
	}
	u.QuestionsAsked = append(u.QuestionsAsked, questionID)
	return nil
}

func (r *UserRepo) AppendAnswered(_ context.Context, userID, questionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return errorz.ErrNotFound
	}
	for _, id := range u.QuestionsAnswered {
		if id == questionID {
			return nil
		}
	}
	u.QuestionsAnswered = append(u.QuestionsAnswered, questionID)
	return nil
}

// Inserts reports how many user records have been created; ensure-exists
// semantics require a repeat call to add none.
func (r *UserRepo) Inserts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserts
}

func copyUser(u *schema.User) schema.User {
	out := *u
	out.QuestionsAsked = append([]int64(nil), u.QuestionsAsked...)
	out.QuestionsAnswered = append([]int64(nil), u.QuestionsAnswered...)
	return out
}
