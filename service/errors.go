package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrAuthentication means that the presented credentials were rejected.
	ErrAuthentication = "authentication"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrDisposed means that the operation was invoked on a stopped engine.
	ErrDisposed = "disposed"
)

// RegistryError represents an error within the context of the registry.
type RegistryError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewRegistryError creates a new RegistryError.
func NewRegistryError(code string, message string, inner error) *RegistryError {
	return &RegistryError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *RegistryError {
	regInner := ToRegistryError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegistryError(ErrInternalServerError, message, inner)
}

func NewAuthenticationError(message string, inner error) *RegistryError {
	regInner := ToRegistryError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegistryError(ErrAuthentication, message, inner)
}

func NewBadParameterError(message string, inner error) *RegistryError {
	regInner := ToRegistryError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegistryError(ErrBadParameter, message, inner)
}

func NewDisposedError(message string, inner error) *RegistryError {
	regInner := ToRegistryError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegistryError(ErrDisposed, message, inner)
}

func (e RegistryError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e RegistryError) Unwrap() error {
	return e.Inner
}

// ToRegistryError returns a pointer to a registry error, or nil if it is not one.
func ToRegistryError(err error) *RegistryError {
	var e *RegistryError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToRegistryErrorCode returns the code of the error, if available.
func ToRegistryErrorCode(err error) string {
	regerror := ToRegistryError(err)
	if regerror != nil {
		return regerror.Code
	}
	return ""
}

func IsRegistryError(err error, code string) bool {
	regerror := ToRegistryError(err)
	if regerror != nil {
		return regerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsRegistryError(err, ErrInternalServerError)
}

func IsAuthenticationError(err error) bool {
	return IsRegistryError(err, ErrAuthentication)
}

func IsBadParameterError(err error) bool {
	return IsRegistryError(err, ErrBadParameter)
}

func IsDisposedError(err error) bool {
	return IsRegistryError(err, ErrDisposed)
}
