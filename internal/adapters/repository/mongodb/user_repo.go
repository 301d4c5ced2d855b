package mongodb

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserRepo struct {
	store *Store
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// EnsureExists returns the user record, creating an empty one on first
// contact. The user ID is the _id, so a concurrent first-contact insert
// fails on the duplicate key and resolves by re-reading the winner's record.
func (r *UserRepo) EnsureExists(ctx context.Context, userID int64) (schema.User, error) {
	var u schema.User
	found, err := r.store.FindByID(ctx, collectionUsers, userID, &u)
	if err != nil {
		return schema.User{}, err
	}
	if found {
		return u, nil
	}

	u = schema.User{
		ID:                userID,
		QuestionsAsked:    []int64{},
		QuestionsAnswered: []int64{},
	}
	if err := r.store.Insert(ctx, collectionUsers, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			found, ferr := r.store.FindByID(ctx, collectionUsers, userID, &u)
			if ferr != nil {
				return schema.User{}, ferr
			}
			if !found {
				return schema.User{}, fmt.Errorf("user %d vanished after duplicate insert", userID)
			}
			return u, nil
		}
		return schema.User{}, err
	}
	return u, nil
}

func (r *UserRepo) AppendAsked(ctx context.Context, userID, questionID int64) error {
	matched, err := r.store.PushField(ctx, collectionUsers, userID, "questions_asked", questionID)
	if err != nil {
		return err
	}
	if !matched {
		return errorz.ErrNotFound
	}
	return nil
}

// AppendAnswered records the question on the user's answered list. Multiple
// answers to the same question list it once.
func (r *UserRepo) AppendAnswered(ctx context.Context, userID, questionID int64) error {
	matched, err := r.store.AddToSet(ctx, collectionUsers, userID, "questions_answered", questionID)
	if err != nil {
		return err
	}
	if !matched {
		return errorz.ErrNotFound
	}
	return nil
}
