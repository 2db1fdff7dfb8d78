package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer's error mapping
// open to new error kinds without touching a switch per kind.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found, or exists but the
	// caller has no visibility into it. The two cases are intentionally
	// indistinguishable so existence never leaks across tenants.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input to a trusted operation
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure. The message stays
	// generic; it never confirms why access was denied.
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Is implementations so errors.Is() matches the corresponding sentinel
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrReferential marks a write that would link a child resource to a
	// parent in a different tenant. Well-behaved clients never trigger it,
	// so occurrences are logged as potential bugs or attack attempts.
	ErrReferential = errors.New("cross-tenant reference")

	// ErrSelfDelete marks an admin attempting to delete their own account
	// through the admin-delete path.
	ErrSelfDelete = errors.New("self delete forbidden")
)

// ConflictError represents a uniqueness conflict (duplicate company name,
// email already registered, concurrent name race). Callers may retry with
// different input.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (company, user)
	ResourceID   string // ID of the existing/conflicting resource, if known
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ReferentialError carries the parent/child pair of a rejected cross-tenant
// link. The write is refused outright rather than silently filtered, so the
// caller never believes a logically-failed write succeeded.
type ReferentialError struct {
	Message    string
	ChildType  string
	ParentType string
	ParentID   string
}

// Error implements the error interface
func (e *ReferentialError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ReferentialError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrReferential
func (e *ReferentialError) Is(target error) bool {
	return target == ErrReferential
}
