package schema

// Answer is embedded in its Question and is not independently addressable.
// Answers are append-only: there is no edit or delete path.
type Answer struct {
	AuthorID  int64  `bson:"author_id" json:"author_id"`
	Title     string `bson:"title" json:"title"`
	Body      string `bson:"body" json:"body"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

// Question is the persisted record for one asked question. IDs are assigned
// once at creation, start at 1 and increase by 1 per question. Upvotes and
// Downvotes are stored as arrays but behave as sets: a user appears at most
// once across both.
type Question struct {
	ID        int64    `bson:"_id" json:"id"`
	AuthorID  int64    `bson:"author_id" json:"author_id"`
	Title     string   `bson:"title" json:"title"`
	Body      string   `bson:"body" json:"body"`
	Tags      []string `bson:"tags" json:"tags"`
	Upvotes   []int64  `bson:"upvotes" json:"upvotes"`
	Downvotes []int64  `bson:"downvotes" json:"downvotes"`
	Answers   []Answer `bson:"answers" json:"answers"`
	Views     int64    `bson:"views" json:"views"`
	CreatedAt int64    `bson:"created_at" json:"created_at"`
}

// HasVoted reports whether the user already appears in either polarity set.
func (q Question) HasVoted(userID int64) bool {
	for _, id := range q.Upvotes {
		if id == userID {
			return true
		}
	}
	for _, id := range q.Downvotes {
		if id == userID {
			return true
		}
	}
	return false
}
