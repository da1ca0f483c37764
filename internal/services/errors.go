package services

import "fmt"

// Service errors carry the HTTP taxonomy: handlers map NotFoundError to 404,
// ConflictError to 409, DomainError to 400, UnauthorizedError to 401 and
// everything else to 500.

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// DomainError is a business-rule violation surfaced to the caller as a 400
// with a specific message (e.g. insufficient stock).
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// UnauthorizedError covers credential failures: bad login, expired or
// malformed refresh tokens, deactivated accounts.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(format string, args ...interface{}) *UnauthorizedError {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}
