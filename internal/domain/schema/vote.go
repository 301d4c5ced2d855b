package schema

// Polarity is the up/down direction of a vote.
type Polarity string

const (
	PolarityUp   Polarity = "up"
	PolarityDown Polarity = "down"
)

// VoteOutcome is the recognized result of a vote request. AlreadyCast is not
// an error: a repeated or redelivered vote is a no-op reported as such.
type VoteOutcome string

const (
	VoteRegistered  VoteOutcome = "registered"
	VoteAlreadyCast VoteOutcome = "already_cast"
)
