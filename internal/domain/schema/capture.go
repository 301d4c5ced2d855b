package schema

// QuestionDraft holds the fields collected by the ask flow before the user
// confirms. Nothing is persisted until the confirmation gate passes.
type QuestionDraft struct {
	Title string
	Body  string
	Tags  []string
}

// AnswerDraft holds the fields collected by the answer flow.
type AnswerDraft struct {
	Title string
	Body  string
}
