package work

import "errors"

var (
	ErrWorkNotFound      = errors.New("work not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTerminalStatus    = errors.New("work is in a terminal status")
	ErrValidation        = errors.New("validation failed")
)
