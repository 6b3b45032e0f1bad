package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrProfileNotFound = errors.New("profile doesn't exists")
	ErrBadEntryType    = errors.New("unknown entry type")
	ErrBadMood         = errors.New("unknown mood")
	ErrBadDuration     = errors.New("invalid voice note duration")
	ErrBadPassword     = errors.New("password doesn't meet requirements")
	ErrSlipConflict    = errors.New("slip transaction retries exhausted")
)
