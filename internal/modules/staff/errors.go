package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrEmailTaken    = errors.New("email already in use")
)
