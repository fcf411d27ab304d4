package services

import (
	"errors"
	"fmt"
)

// Validation failures surfaced to the web layer. None of them are
// transient; a failed call leaves every entity unmodified.
var (
	ErrSelfFollow    = errors.New("you cannot follow yourself")
	ErrBlocked       = errors.New("interaction not allowed between blocked accounts")
	ErrNoSuchRequest = errors.New("no pending follow request from this user")
	ErrNotOwner      = errors.New("you do not own this resource")
	ErrEmptyPost     = errors.New("post must have content or an image")
	ErrEmptyComment  = errors.New("comment cannot be empty")
	ErrNoSuchComment = errors.New("comment not found")
	ErrNoSuchAccount = errors.New("account not found")
	ErrNoSuchPost    = errors.New("post not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already in use")
	ErrBadCredential = errors.New("invalid credentials")
)

// HashtagError names the offending tag and the rule it violated.
type HashtagError struct {
	Tag    string
	Reason string
}

func (e *HashtagError) Error() string {
	return fmt.Sprintf("invalid hashtag #%s: %s", e.Tag, e.Reason)
}
