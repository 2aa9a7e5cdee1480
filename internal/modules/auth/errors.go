package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
