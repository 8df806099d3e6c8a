package handlers

import (
	"github.com/go-playground/validator/v10"

	"serviceregistry/service"
)

// RequestValidator plugs go-playground/validator into echo's Validate hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator used for request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags and surfaces failures as bad_parameter.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return service.NewBadParameterError("request validation failed", err)
	}
	return nil
}
