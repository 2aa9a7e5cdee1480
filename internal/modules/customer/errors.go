package customer

import "errors"

var (
	ErrCustomerNotFound         = errors.New("customer not found")
	ErrServiceNotSubscribed     = errors.New("customer is not subscribed to this service")
	ErrServiceAlreadySubscribed = errors.New("customer is already subscribed to this service")
	ErrValidation               = errors.New("validation failed")
)
