package qa

import (
	"StackBot/internal/adapters/repository/memory"
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/schema"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*Service, *memory.QuestionRepo, *memory.UserRepo) {
	questions := memory.NewQuestionRepo()
	users := memory.NewUserRepo()
	s := New(questions, users, zap.NewNop())
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s, questions, users
}

func TestPostCreatesExpectedRecord(t *testing.T) {
	s, _, users := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 42, schema.QuestionDraft{
		Title: "Why?",
		Body:  "Explain recursion",
		Tags:  []string{"cs", "python"},
	})
	require.NoError(t, err)

	require.Equal(t, int64(1), q.ID)
	require.Equal(t, int64(42), q.AuthorID)
	require.Equal(t, "Why?", q.Title)
	require.Equal(t, "Explain recursion", q.Body)
	require.Equal(t, []string{"cs", "python"}, q.Tags)
	require.Empty(t, q.Upvotes)
	require.Empty(t, q.Downvotes)
	require.Empty(t, q.Answers)
	require.Equal(t, int64(0), q.Views)
	require.Equal(t, int64(1700000000), q.CreatedAt)

	u, err := users.EnsureExists(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, u.QuestionsAsked)
}

func TestSequentialPostsGetSequentialIDs(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	const n = 25
	for i := 1; i <= n; i++ {
		q, err := s.Post(ctx, int64(i), schema.QuestionDraft{Title: fmt.Sprintf("q%d", i), Body: "b"})
		require.NoError(t, err)
		require.Equal(t, int64(i), q.ID, "IDs must be 1..N with no gaps or repeats")
	}
}

func TestDoubleUpvoteRegistersOnce(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 1, schema.QuestionDraft{Title: "t", Body: "b"})
	require.NoError(t, err)

	out, err := s.Vote(ctx, q.ID, 7, schema.PolarityUp)
	require.NoError(t, err)
	require.Equal(t, schema.VoteRegistered, out)

	out, err = s.Vote(ctx, q.ID, 7, schema.PolarityUp)
	require.NoError(t, err)
	require.Equal(t, schema.VoteAlreadyCast, out)

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{7}, got.Upvotes, "user appears exactly once")
}

func TestOppositeVoteIsRejectedAsAlreadyCast(t *testing.T) {
	// Vote switching is unsupported: a user present in either polarity set
	// stays there, and any further vote resolves to VoteAlreadyCast.
	s, _, _ := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 1, schema.QuestionDraft{Title: "t", Body: "b"})
	require.NoError(t, err)

	out, err := s.Vote(ctx, q.ID, 7, schema.PolarityUp)
	require.NoError(t, err)
	require.Equal(t, schema.VoteRegistered, out)

	out, err = s.Vote(ctx, q.ID, 7, schema.PolarityDown)
	require.NoError(t, err)
	require.Equal(t, schema.VoteAlreadyCast, out)

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{7}, got.Upvotes)
	require.Empty(t, got.Downvotes)
}

func TestVoteOnMissingQuestion(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.Vote(context.Background(), 999, 7, schema.PolarityUp)
	require.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestViewIncrementsExactlyOncePerRender(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 1, schema.QuestionDraft{Title: "t", Body: "b"})
	require.NoError(t, err)

	const k = 5
	for i := 0; i < k; i++ {
		_, err := s.View(ctx, q.ID)
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, int64(k), got.Views)
}

func TestViewReturnsPreIncrementCount(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 1, schema.QuestionDraft{Title: "t", Body: "b"})
	require.NoError(t, err)

	rendered, err := s.View(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), rendered.Views)

	rendered, err = s.View(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rendered.Views)
}

func TestViewMissingQuestion(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.View(context.Background(), 999)
	require.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestAnswerAppendsAndRecordsAuthor(t *testing.T) {
	s, _, users := newTestService()
	ctx := context.Background()

	q, err := s.Post(ctx, 1, schema.QuestionDraft{Title: "t", Body: "b"})
	require.NoError(t, err)

	err = s.Answer(ctx, q.ID, 9, schema.AnswerDraft{Title: "short", Body: "use a base case"})
	require.NoError(t, err)

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	require.Equal(t, int64(9), got.Answers[0].AuthorID)
	require.Equal(t, "short", got.Answers[0].Title)
	require.Equal(t, int64(1700000000), got.Answers[0].CreatedAt)

	u, err := users.EnsureExists(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, []int64{q.ID}, u.QuestionsAnswered)
}

func TestAnswerMissingQuestionWritesNothing(t *testing.T) {
	s, _, users := newTestService()
	ctx := context.Background()

	err := s.Answer(ctx, 999, 9, schema.AnswerDraft{Title: "t", Body: "b"})
	require.ErrorIs(t, err, errorz.ErrNotFound)

	u, err := users.EnsureExists(ctx, 9)
	require.NoError(t, err)
	require.Empty(t, u.QuestionsAnswered, "no answer recorded anywhere")
}

func TestEnsureExistsIsIdempotent(t *testing.T) {
	_, _, users := newTestService()
	ctx := context.Background()

	first, err := users.EnsureExists(ctx, 42)
	require.NoError(t, err)
	second, err := users.EnsureExists(ctx, 42)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, users.Inserts(), "second call must not insert")
}
