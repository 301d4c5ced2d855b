package schema

// User is created lazily on first contact and never deleted. The platform
// user ID is the primary key.
type User struct {
	ID                int64   `bson:"_id" json:"id"`
	QuestionsAsked    []int64 `bson:"questions_asked" json:"questions_asked"`
	QuestionsAnswered []int64 `bson:"questions_answered" json:"questions_answered"`
}
