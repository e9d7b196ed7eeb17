// Package apperrors defines the error taxonomy shared by the lifecycle
// operations and the HTTP layer. Every error surfaces directly to the caller;
// nothing is retried internally.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNoVacantProperty is returned when a tenant cannot be created because no
// property is currently vacant.
var ErrNoVacantProperty = &ValidationError{Message: "no vacant units available"}

// ValidationError marks invalid or missing input, or a precondition failure
// such as assigning a tenant to an occupied unit. Nothing is written when a
// ValidationError is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a reference to a property, tenant or user id that does
// not exist. It is a hard failure of the request, not a recoverable condition.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given resource and id.
func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IntegrityError marks a write rejected by a uniqueness constraint, e.g. a
// duplicate username on registration. The write is rolled back and reported;
// there is no retry.
type IntegrityError struct {
	Message string
	Err     error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsIntegrity reports whether err is (or wraps) an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
