package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for request-boundary validation.
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validatorInst *Validator
)

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInst = &Validator{validate: validator.New()}
	})
	return validatorInst
}

// Validate checks the struct's `validate` tags.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
