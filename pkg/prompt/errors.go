package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoOptions is returned when an Enum property declares no values.
	ErrNoOptions = errors.New("prompt: enum property has no values")
	// ErrInvalidAnswer is returned when a driver hands back an answer its
	// validator would have rejected.
	ErrInvalidAnswer = errors.New("prompt: invalid answer")
)
