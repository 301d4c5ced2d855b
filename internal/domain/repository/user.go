package repository

import (
	"StackBot/internal/domain/schema"
	"context"
)

// UserRepository tracks participants. EnsureExists has create-if-absent
// semantics: a second call with the same ID returns the existing record with
// no side effect, and a concurrent duplicate insert is benign.
type UserRepository interface {
	EnsureExists(ctx context.Context, userID int64) (schema.User, error)
	AppendAsked(ctx context.Context, userID, questionID int64) error
	AppendAnswered(ctx context.Context, userID, questionID int64) error
}
