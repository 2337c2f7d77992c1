// Package domain defines core types, interfaces, and errors for the studio site.
package domain

import (
	"errors"
	"fmt"
)

// Constraint classifies a row-store constraint violation. It is filled in at the
// repository boundary from the driver's structured error code.
type Constraint int

// Constraint kinds reported by the row store.
const (
	ConstraintNone Constraint = iota
	ConstraintUnique
	ConstraintNotNull
	ConstraintForeignKey
	ConstraintCheck
)

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates insufficient permissions.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message    string
	Constraint Constraint
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message    string
	Constraint Constraint
}

func (e *ConflictError) Error() string { return e.Message }

// ErrInvalidCredentials is returned by sign-in when the email/password pair is wrong.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
