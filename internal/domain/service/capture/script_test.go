package capture

import (
	"StackBot/internal/domain/errorz"
	"StackBot/internal/domain/schema"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers each prompt by feeding the next scripted reply
// straight back into the engine, and resolves the confirmation gate with a
// fixed decision. An empty reply slot means "stay silent".
type scriptedPrompter struct {
	engine   *Engine
	userID   int64
	chatID   int64
	replies  []string
	decision *bool // nil means never press a button

	prompts  []string
	previews []schema.QuestionDraft
}

func (p *scriptedPrompter) Prompt(_ context.Context, _ int64, text string) error {
	p.prompts = append(p.prompts, text)
	i := len(p.prompts) - 1
	if i < len(p.replies) && p.replies[i] != "" {
		p.engine.Deliver(p.userID, p.chatID, p.replies[i])
	}
	return nil
}

func (p *scriptedPrompter) PresentQuestionConfirm(_ context.Context, _, _ int64, draft schema.QuestionDraft) error {
	p.previews = append(p.previews, draft)
	if p.decision != nil {
		p.engine.Decide(p.userID, p.chatID, *p.decision)
	}
	return nil
}

func (p *scriptedPrompter) PresentAnswerConfirm(_ context.Context, _, _ int64, _ schema.AnswerDraft) error {
	if p.decision != nil {
		p.engine.Decide(p.userID, p.chatID, *p.decision)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

func testConfig() Config {
	return Config{
		CharLimit:      1500,
		PromptTimeout:  50 * time.Millisecond,
		ConfirmTimeout: 50 * time.Millisecond,
	}
}

func TestCollectQuestionHappyPath(t *testing.T) {
	e := NewEngine()
	p := &scriptedPrompter{
		engine:   e,
		userID:   42,
		chatID:   7,
		replies:  []string{"Why?", "Explain recursion", "cs, python"},
		decision: boolPtr(true),
	}
	s := NewScript(e, p, testConfig())

	draft, err := s.CollectQuestion(context.Background(), 42, 7)
	require.NoError(t, err)
	require.Equal(t, "Why?", draft.Title)
	require.Equal(t, "Explain recursion", draft.Body)
	require.Equal(t, []string{"cs", "python"}, draft.Tags)

	require.Len(t, p.prompts, 3)
	require.Contains(t, p.prompts[0], "title")
	require.Contains(t, p.prompts[1], "body")
	require.Contains(t, p.prompts[2], "tags")
	require.Len(t, p.previews, 1)

	// flow is gone after completion
	require.False(t, e.Active(42, 7))
}

func TestCollectQuestionTimeoutLeavesNothing(t *testing.T) {
	e := NewEngine()
	p := &scriptedPrompter{engine: e, userID: 42, chatID: 7, replies: []string{"a title"}}
	s := NewScript(e, p, testConfig())

	_, err := s.CollectQuestion(context.Background(), 42, 7)
	require.ErrorIs(t, err, errorz.ErrTimeout)
	require.False(t, e.Active(42, 7))
	require.Empty(t, p.previews, "no confirmation gate after a timeout")
}

func TestCollectQuestionAbortsOnOverlongTitle(t *testing.T) {
	e := NewEngine()
	long := strings.Repeat("x", 1501)
	p := &scriptedPrompter{engine: e, userID: 42, chatID: 7, replies: []string{long}}
	s := NewScript(e, p, testConfig())

	_, err := s.CollectQuestion(context.Background(), 42, 7)
	require.ErrorIs(t, err, errorz.ErrTooLong)
	require.Len(t, p.prompts, 1, "abort, not re-prompt")
}

func TestCollectQuestionAbortsOnOverlongBody(t *testing.T) {
	e := NewEngine()
	long := strings.Repeat("x", 1501)
	p := &scriptedPrompter{engine: e, userID: 42, chatID: 7, replies: []string{"title", long}}
	s := NewScript(e, p, testConfig())

	_, err := s.CollectQuestion(context.Background(), 42, 7)
	require.ErrorIs(t, err, errorz.ErrTooLong)
}

func TestCollectQuestionCancelled(t *testing.T) {
	e := NewEngine()
	p := &scriptedPrompter{
		engine:   e,
		userID:   42,
		chatID:   7,
		replies:  []string{"t", "b", "none"},
		decision: boolPtr(false),
	}
	s := NewScript(e, p, testConfig())

	_, err := s.CollectQuestion(context.Background(), 42, 7)
	require.ErrorIs(t, err, errorz.ErrCancelled)
}

func TestCollectQuestionConfirmationTimesOut(t *testing.T) {
	e := NewEngine()
	p := &scriptedPrompter{engine: e, userID: 42, chatID: 7, replies: []string{"t", "b", "none"}}
	s := NewScript(e, p, testConfig())

	_, err := s.CollectQuestion(context.Background(), 42, 7)
	require.ErrorIs(t, err, errorz.ErrTimeout)
}

func TestCollectAnswerHappyPath(t *testing.T) {
	e := NewEngine()
	p := &scriptedPrompter{
		engine:   e,
		userID:   9,
		chatID:   7,
		replies:  []string{"Short version", "Use a base case."},
		decision: boolPtr(true),
	}
	s := NewScript(e, p, testConfig())

	draft, err := s.CollectAnswer(context.Background(), 9, 7)
	require.NoError(t, err)
	require.Equal(t, "Short version", draft.Title)
	require.Equal(t, "Use a base case.", draft.Body)
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"none literal", "none", []string{}},
		{"none case-insensitive", " NoNe ", []string{}},
		{"single", "go", []string{"go"}},
		{"comma separated with spaces", "cs, python", []string{"cs", "python"}},
		{"bare comma still yields entries", ",", []string{"", ""}},
		{"word none among tags is kept", "none, go", []string{"none", "go"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseTags(tc.in))
		})
	}
}
