package note

import "errors"

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrParentNotFound = errors.New("parent record not found")
	ErrValidation     = errors.New("validation failed")
)
