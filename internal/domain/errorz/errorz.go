package errorz

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrTimeout    = errors.New("timed out waiting for a reply")
	ErrTooLong    = errors.New("content exceeds the character limit")
	ErrCancelled  = errors.New("cancelled")
	ErrFlowActive = errors.New("a capture flow is already in progress")
)
