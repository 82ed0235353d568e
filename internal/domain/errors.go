package domain

import "errors"

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrQueryTooLong = errors.New("query too long")
	ErrInvalidRange = errors.New("invalid result window")
	ErrEmptySort    = errors.New("sort field name is empty")
)

var ErrRateLimited = errors.New("rate limit exceeded")
