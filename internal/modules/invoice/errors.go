package invoice

import "errors"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrNotDraft        = errors.New("invoice is not a draft")
	ErrNotSent         = errors.New("invoice has not been sent")
	ErrNoLines         = errors.New("invoice has no lines")
	ErrImmutable       = errors.New("paid or cancelled invoices cannot change")
	ErrValidation      = errors.New("validation failed")
)
