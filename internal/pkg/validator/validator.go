// Package validator wraps go-playground struct validation and flattens
// the result into the field-to-rule details map the response envelope
// carries.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns nil when v passes, otherwise a map from the failing
// field's name to the rule tag it violated, e.g. {"Title": "required"}.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
