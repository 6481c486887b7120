package utils

import "errors"

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrVibeNotFound  = errors.New("vibe summary not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")

	errNoContent = errors.New("model returned no content")
)
