package lead

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrAlreadyConverted    = errors.New("lead already converted")
	ErrCannotConvert       = errors.New("lead cannot be converted in current status")
	ErrValidation          = errors.New("validation failed")
	ErrUnknownWorkService  = errors.New("work draft references unknown service")
	ErrServiceAlreadyAdded = errors.New("service already added to lead")
	ErrNoCustomer          = errors.New("customer id is required for work creation")
)
